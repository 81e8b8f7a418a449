package analytics

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const trendMonths = 12

// Service coordinates the aggregate queries with caching and coalescing.
// Concurrent requests for the same key share one database round trip.
type Service struct {
	repo    Repository
	cache   *Cache
	group   singleflight.Group
	printer *message.Printer
	now     func() time.Time
}

// NewService wires a Repository with the cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// Summary returns the dashboard headline figures.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		items, err := s.repo.TotalItems(ctx)
		if err != nil {
			return nil, err
		}
		revenue, err := s.repo.TotalRevenue(ctx)
		if err != nil {
			return nil, err
		}
		lowStock, err := s.repo.LowStockCount(ctx)
		if err != nil {
			return nil, err
		}
		return Summary{
			TotalItems:          items,
			TotalRevenue:        revenue,
			TotalRevenueDisplay: s.printer.Sprintf("$%.2f", revenue),
			LowStockCount:       lowStock,
		}, nil
	}
	var out Summary
	err := s.fetch(ctx, &out, loader, "dashboard", "summary")
	return out, err
}

// RevenueTrend returns the last twelve calendar months of revenue, oldest
// first, with empty months zero-filled.
func (s *Service) RevenueTrend(ctx context.Context) ([]TrendPoint, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		now := s.now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -(trendMonths - 1), 0)
		buckets, err := s.repo.MonthlyRevenue(ctx, start)
		if err != nil {
			return nil, err
		}
		points := make([]TrendPoint, 0, trendMonths)
		for i := 0; i < trendMonths; i++ {
			month := start.AddDate(0, i, 0).Format("2006-01")
			points = append(points, TrendPoint{Month: month, Revenue: buckets[month]})
		}
		return points, nil
	}
	var out []TrendPoint
	err := s.fetch(ctx, &out, loader, "dashboard", "trend")
	return out, err
}

// ItemsAboveCollectionAverage lists items priced above their collection's
// average price.
func (s *Service) ItemsAboveCollectionAverage(ctx context.Context) ([]PricedItem, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.ItemsAboveCollectionAverage(ctx)
	}
	var out []PricedItem
	err := s.fetch(ctx, &out, loader, "reports", "above_avg")
	return out, err
}

// ProductCatalog returns the full product join.
func (s *Service) ProductCatalog(ctx context.Context) ([]ProductInfo, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.ProductCatalog(ctx)
	}
	var out []ProductInfo
	err := s.fetch(ctx, &out, loader, "reports", "catalog")
	return out, err
}

// TopSellers returns the best selling items by units sold.
func (s *Service) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	if limit <= 0 {
		limit = defaultTopSellers
	}
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.TopSellers(ctx, limit)
	}
	var out []TopSeller
	err := s.fetch(ctx, &out, loader, "reports", "top_sellers", strconv.Itoa(limit))
	return out, err
}

// SalesByStore returns per-store sales totals.
func (s *Service) SalesByStore(ctx context.Context) ([]StorePerformance, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.SalesByStore(ctx)
	}
	var out []StorePerformance
	err := s.fetch(ctx, &out, loader, "reports", "by_store")
	return out, err
}

// Invalidate drops every cached dashboard value.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) fetch(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error), keyParts ...string) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		var payload interface{}
		err := s.cache.FetchJSON(ctx, key, &payload, loader)
		return payload, err
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return res.Err
		}
		return roundtrip(res.Val, dest)
	}
}
