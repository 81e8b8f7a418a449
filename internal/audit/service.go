package audit

import (
	"context"
	"fmt"
)

// Repository provides the listing queries the service needs.
type Repository interface {
	ListWindow(ctx context.Context, filters Filters, offset, limit int) ([]Record, error)
}

// Service coordinates audit listings.
type Service struct {
	repo Repository
}

// NewService builds an audit listing service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List fetches a page of audit records, newest first. It asks the
// repository for one extra row to detect whether a next page exists.
func (s *Service) List(ctx context.Context, filters Filters) (Result, error) {
	if s.repo == nil {
		return Result{}, fmt.Errorf("audit: repository not configured")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	records, err := s.repo.ListWindow(ctx, filters, offset, pageSize+1)
	if err != nil {
		return Result{}, err
	}
	hasNext := len(records) > pageSize
	if hasNext {
		records = records[:pageSize]
	}
	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Records: records, Paging: paging}, nil
}
