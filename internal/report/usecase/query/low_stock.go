package query

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/report/domain"
)

// LowStockQuery requests the low stock ranking for one user.
type LowStockQuery struct {
	UserID uint
	Limit  int
}

// LowStockHandler handles the low stock ranking query
type LowStockHandler struct {
	repo domain.ReportRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ReportRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(ctx context.Context, q LowStockQuery) ([]domain.LowStockItem, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	items, err := h.repo.LowStock(ctx, q.UserID, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock ranking: %w", err)
	}
	return items, nil
}
