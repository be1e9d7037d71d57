package query

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/sales/domain"
)

// GetSaleQuery represents the query to get a single sale
type GetSaleQuery struct {
	UserID uint
	SaleID uint
}

// GetSaleHandler handles get sale query
type GetSaleHandler struct {
	repo domain.SalesRepository
}

// NewGetSaleHandler creates a new get sale handler
func NewGetSaleHandler(repo domain.SalesRepository) *GetSaleHandler {
	return &GetSaleHandler{repo: repo}
}

// Handle executes the get sale query
func (h *GetSaleHandler) Handle(ctx context.Context, q GetSaleQuery) (*domain.Sale, error) {
	if q.SaleID == 0 {
		return nil, fmt.Errorf("%w: sale id is required", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(ctx, q.UserID, q.SaleID)
}
