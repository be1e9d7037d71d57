package query

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/report/domain"
)

// TopSellerQuery requests the best selling goods inside a date range.
// A zero range defaults to the last 30 days.
type TopSellerQuery struct {
	UserID uint
	Start  time.Time
	End    time.Time
}

// TopSellerHandler handles the top seller query
type TopSellerHandler struct {
	repo domain.ReportRepository
}

// NewTopSellerHandler creates a new top seller handler
func NewTopSellerHandler(repo domain.ReportRepository) *TopSellerHandler {
	return &TopSellerHandler{repo: repo}
}

// Handle executes the top seller query. A nil result means no sales
// fell inside the range.
func (h *TopSellerHandler) Handle(ctx context.Context, q TopSellerQuery) (*domain.TopSellingItem, error) {
	if q.End.IsZero() {
		q.End = time.Now()
	}
	if q.Start.IsZero() {
		q.Start = q.End.AddDate(0, 0, -30)
	}
	if q.End.Before(q.Start) {
		return nil, fmt.Errorf("invalid date range: end before start")
	}

	item, err := h.repo.TopSeller(ctx, q.UserID, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get top seller: %w", err)
	}
	return item, nil
}
