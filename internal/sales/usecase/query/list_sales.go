package query

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/sales/domain"
)

// ListSalesQuery represents the query to list sales with filters
type ListSalesQuery struct {
	UserID uint
	Filter domain.SalesFilter
}

// ListSalesResult carries one page of sales plus the total match count
type ListSalesResult struct {
	Sales []domain.Sale `json:"sales"`
	Total int64         `json:"total"`
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.SalesRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SalesRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(ctx context.Context, q ListSalesQuery) (*ListSalesResult, error) {
	if q.Filter.Limit <= 0 {
		q.Filter.Limit = 20
	}
	if q.Filter.Limit > 100 {
		q.Filter.Limit = 100
	}
	if q.Filter.Offset < 0 {
		q.Filter.Offset = 0
	}

	sales, total, err := h.repo.FindAll(ctx, q.UserID, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return &ListSalesResult{Sales: sales, Total: total}, nil
}
