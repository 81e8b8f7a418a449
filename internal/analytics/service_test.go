package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	revenueByMonth map[string]float64
	summaryHits    int
}

func (s *stubRepo) TotalItems(ctx context.Context) (int, error) {
	s.summaryHits++
	return 42, nil
}

func (s *stubRepo) TotalRevenue(ctx context.Context) (float64, error) {
	return 1234567.5, nil
}

func (s *stubRepo) LowStockCount(ctx context.Context) (int, error) {
	return 3, nil
}

func (s *stubRepo) MonthlyRevenue(ctx context.Context, since time.Time) (map[string]float64, error) {
	return s.revenueByMonth, nil
}

func (s *stubRepo) ItemsAboveCollectionAverage(ctx context.Context) ([]PricedItem, error) {
	return nil, nil
}

func (s *stubRepo) ProductCatalog(ctx context.Context) ([]ProductInfo, error) {
	return nil, nil
}

func (s *stubRepo) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	return nil, nil
}

func (s *stubRepo) SalesByStore(ctx context.Context) ([]StorePerformance, error) {
	return nil, nil
}

func newCachedService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute))
}

func TestSummaryFormatsRevenue(t *testing.T) {
	svc := newCachedService(t, &stubRepo{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, summary.TotalItems)
	require.Equal(t, 3, summary.LowStockCount)
	require.InDelta(t, 1234567.5, summary.TotalRevenue, 0.001)
	require.Equal(t, "$1,234,567.50", summary.TotalRevenueDisplay)
}

func TestSummaryIsCached(t *testing.T) {
	repo := &stubRepo{}
	svc := newCachedService(t, repo)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.summaryHits, "second call must come from cache")
}

func TestInvalidateDropsCachedSummary(t *testing.T) {
	repo := &stubRepo{}
	svc := newCachedService(t, repo)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.summaryHits)
}

func TestRevenueTrendZeroFillsEmptyMonths(t *testing.T) {
	repo := &stubRepo{revenueByMonth: map[string]float64{
		"2026-01": 900,
		"2026-03": 450.5,
	}}
	svc := newCachedService(t, repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	points, err := svc.RevenueTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 12)
	require.Equal(t, "2025-04", points[0].Month)
	require.Equal(t, "2026-03", points[11].Month)

	byMonth := map[string]float64{}
	for _, p := range points {
		byMonth[p.Month] = p.Revenue
	}
	require.InDelta(t, 900, byMonth["2026-01"], 0.001)
	require.InDelta(t, 450.5, byMonth["2026-03"], 0.001)
	require.Zero(t, byMonth["2025-12"], "months without sales are zero-filled")
}
