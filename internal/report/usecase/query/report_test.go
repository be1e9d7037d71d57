package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungio/stockpilot/internal/report/domain"
)

type fakeReportRepo struct {
	lowStock  []domain.LowStockItem
	revenue   float64
	topSeller *domain.TopSellingItem
	series    []domain.DailySalesPoint
	err       error

	gotLimit int
	gotYear  int
	gotMonth time.Month
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeReportRepo) LowStock(ctx context.Context, userID uint, limit int) ([]domain.LowStockItem, error) {
	f.gotLimit = limit
	return f.lowStock, f.err
}

func (f *fakeReportRepo) MonthlyRevenue(ctx context.Context, userID uint, year int, month time.Month) (float64, error) {
	f.gotYear = year
	f.gotMonth = month
	return f.revenue, f.err
}

func (f *fakeReportRepo) TopSeller(ctx context.Context, userID uint, start, end time.Time) (*domain.TopSellingItem, error) {
	f.gotStart = start
	f.gotEnd = end
	return f.topSeller, f.err
}

func (f *fakeReportRepo) DailySeries(ctx context.Context, userID uint, start, end time.Time) ([]domain.DailySalesPoint, error) {
	f.gotStart = start
	f.gotEnd = end
	return f.series, f.err
}

func TestLowStockDefaultsAndCapsLimit(t *testing.T) {
	repo := &fakeReportRepo{lowStock: []domain.LowStockItem{{GoodsID: 1, Name: "Kopi", StockQuantity: 2}}}
	h := NewLowStockHandler(repo)

	items, err := h.Handle(context.Background(), LowStockQuery{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 10, repo.gotLimit)

	_, err = h.Handle(context.Background(), LowStockQuery{UserID: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.gotLimit)
}

func TestMonthlyRevenueDefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeReportRepo{revenue: 125000}
	h := NewMonthlyRevenueHandler(repo)

	result, err := h.Handle(context.Background(), MonthlyRevenueQuery{UserID: 1})
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), result.Year)
	assert.Equal(t, int(now.Month()), result.Month)
	assert.Equal(t, 125000.0, result.Revenue)
	assert.Equal(t, now.Year(), repo.gotYear)
}

func TestMonthlyRevenueRejectsInvalidMonth(t *testing.T) {
	h := NewMonthlyRevenueHandler(&fakeReportRepo{})

	_, err := h.Handle(context.Background(), MonthlyRevenueQuery{UserID: 1, Year: 2026, Month: 13})
	assert.Error(t, err)
}

func TestTopSellerDefaultsToLastThirtyDays(t *testing.T) {
	repo := &fakeReportRepo{topSeller: &domain.TopSellingItem{GoodsID: 2, Name: "Teh", QuantitySold: 40}}
	h := NewTopSellerHandler(repo)

	item, err := h.Handle(context.Background(), TopSellerQuery{UserID: 1})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Teh", item.Name)

	assert.WithinDuration(t, time.Now(), repo.gotEnd, time.Minute)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), repo.gotStart, time.Minute)
}

func TestTopSellerNilWhenNoSales(t *testing.T) {
	h := NewTopSellerHandler(&fakeReportRepo{})

	item, err := h.Handle(context.Background(), TopSellerQuery{UserID: 1})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestDailySeriesRejectsInvertedRange(t *testing.T) {
	h := NewDailySeriesHandler(&fakeReportRepo{})

	_, err := h.Handle(context.Background(), DailySeriesQuery{
		UserID: 1,
		Start:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Error(t, err)
}

func TestDailySeriesPassesExplicitRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{series: []domain.DailySalesPoint{{QuantitySold: 3, Revenue: 9000}}}
	h := NewDailySeriesHandler(repo)

	points, err := h.Handle(context.Background(), DailySeriesQuery{UserID: 1, Start: start, End: end})
	require.NoError(t, err)
	assert.Len(t, points, 1)
	assert.Equal(t, start, repo.gotStart)
	assert.Equal(t, end, repo.gotEnd)
}
