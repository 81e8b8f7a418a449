package audithttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListService defines the business contract for audit listings.
type ListService interface {
	List(ctx context.Context, filters audit.Filters) (audit.Result, error)
}

// Handler serves audit listing requests.
type Handler struct {
	logger  *slog.Logger
	service ListService
}

// NewHandler builds a new audit handler.
func NewHandler(logger *slog.Logger, service ListService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		shared.RespondJSON(w, http.StatusBadRequest, shared.ErrorBody{Error: err.Error()})
		return
	}
	result, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list audit records", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) parseFilters(r *http.Request) (audit.Filters, error) {
	q := r.URL.Query()
	filters := audit.Filters{
		Actor:      q.Get("actor"),
		Action:     q.Get("action"),
		EntityType: q.Get("entity"),
		PageSize:   defaultPageSize,
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return audit.Filters{}, fmt.Errorf("invalid from date %q", raw)
		}
		filters.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return audit.Filters{}, fmt.Errorf("invalid to date %q", raw)
		}
		// Inclusive end of day.
		filters.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return audit.Filters{}, fmt.Errorf("invalid page %q", raw)
		}
		filters.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			return audit.Filters{}, fmt.Errorf("invalid page_size %q", raw)
		}
		filters.PageSize = size
	}
	return filters, nil
}
