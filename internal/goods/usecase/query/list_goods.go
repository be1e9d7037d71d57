package query

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// ListGoodsQuery represents the query to list goods with pagination and search
type ListGoodsQuery struct {
	UserID uint
	Search string
	Limit  int
	Offset int
}

// ListGoodsResult carries one page of goods plus the total match count
type ListGoodsResult struct {
	Goods []domain.Goods `json:"goods"`
	Total int64          `json:"total"`
}

// ListGoodsHandler handles list goods query
type ListGoodsHandler struct {
	repo domain.GoodsRepository
}

// NewListGoodsHandler creates a new list goods handler
func NewListGoodsHandler(repo domain.GoodsRepository) *ListGoodsHandler {
	return &ListGoodsHandler{repo: repo}
}

// Handle executes the list goods query
func (h *ListGoodsHandler) Handle(ctx context.Context, q ListGoodsQuery) (*ListGoodsResult, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	goods, total, err := h.repo.FindAll(ctx, q.UserID, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list goods: %w", err)
	}

	return &ListGoodsResult{Goods: goods, Total: total}, nil
}
