package query

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/report/domain"
)

// DailySeriesQuery requests the per-day sales series inside a date range.
// A zero range defaults to the last 30 days.
type DailySeriesQuery struct {
	UserID uint
	Start  time.Time
	End    time.Time
}

// DailySeriesHandler handles the daily sales series query
type DailySeriesHandler struct {
	repo domain.ReportRepository
}

// NewDailySeriesHandler creates a new daily series handler
func NewDailySeriesHandler(repo domain.ReportRepository) *DailySeriesHandler {
	return &DailySeriesHandler{repo: repo}
}

// Handle executes the daily series query
func (h *DailySeriesHandler) Handle(ctx context.Context, q DailySeriesQuery) ([]domain.DailySalesPoint, error) {
	if q.End.IsZero() {
		q.End = time.Now()
	}
	if q.Start.IsZero() {
		q.Start = q.End.AddDate(0, 0, -30)
	}
	if q.End.Before(q.Start) {
		return nil, fmt.Errorf("invalid date range: end before start")
	}

	points, err := h.repo.DailySeries(ctx, q.UserID, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales series: %w", err)
	}
	return points, nil
}
