package query

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/report/domain"
)

// MonthlyRevenueQuery requests total revenue for one calendar month.
// A zero Year or Month defaults to the current month.
type MonthlyRevenueQuery struct {
	UserID uint
	Year   int
	Month  time.Month
}

// MonthlyRevenueResult carries the summed revenue plus the resolved period.
type MonthlyRevenueResult struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// MonthlyRevenueHandler handles the monthly revenue query
type MonthlyRevenueHandler struct {
	repo domain.ReportRepository
}

// NewMonthlyRevenueHandler creates a new monthly revenue handler
func NewMonthlyRevenueHandler(repo domain.ReportRepository) *MonthlyRevenueHandler {
	return &MonthlyRevenueHandler{repo: repo}
}

// Handle executes the monthly revenue query
func (h *MonthlyRevenueHandler) Handle(ctx context.Context, q MonthlyRevenueQuery) (*MonthlyRevenueResult, error) {
	now := time.Now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = now.Month()
	}
	if q.Month < time.January || q.Month > time.December {
		return nil, fmt.Errorf("invalid month: %d", q.Month)
	}

	revenue, err := h.repo.MonthlyRevenue(ctx, q.UserID, q.Year, q.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}
	return &MonthlyRevenueResult{Year: q.Year, Month: int(q.Month), Revenue: revenue}, nil
}
