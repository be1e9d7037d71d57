package query

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// GetGoodsQuery represents the query to get a single goods item
type GetGoodsQuery struct {
	UserID  uint
	GoodsID uint
}

// GetGoodsHandler handles get goods query
type GetGoodsHandler struct {
	repo domain.GoodsRepository
}

// NewGetGoodsHandler creates a new get goods handler
func NewGetGoodsHandler(repo domain.GoodsRepository) *GetGoodsHandler {
	return &GetGoodsHandler{repo: repo}
}

// Handle executes the get goods query
func (h *GetGoodsHandler) Handle(ctx context.Context, q GetGoodsQuery) (*domain.Goods, error) {
	if q.GoodsID == 0 {
		return nil, fmt.Errorf("goods id is required")
	}
	return h.repo.FindByID(ctx, q.UserID, q.GoodsID)
}
