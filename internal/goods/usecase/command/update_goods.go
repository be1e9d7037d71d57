package command

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// UpdateGoodsCommand represents the command to update an existing goods item.
// Nil fields are left unchanged. Setting StockQuantity here overwrites the
// value directly and performs no ledger accounting; recording a sale must go
// through the sales ledger instead.
type UpdateGoodsCommand struct {
	UserID        uint
	GoodsID       uint
	Name          *string
	Category      *string
	Price         *float64
	StockQuantity *int
}

// UpdateGoodsHandler handles goods updates
type UpdateGoodsHandler struct {
	repo domain.GoodsRepository
}

// NewUpdateGoodsHandler creates a new update goods handler
func NewUpdateGoodsHandler(repo domain.GoodsRepository) *UpdateGoodsHandler {
	return &UpdateGoodsHandler{repo: repo}
}

// Handle executes the update goods command
func (h *UpdateGoodsHandler) Handle(ctx context.Context, cmd UpdateGoodsCommand) (*domain.Goods, error) {
	if cmd.GoodsID == 0 {
		return nil, fmt.Errorf("goods id is required")
	}

	goods, err := h.repo.FindByID(ctx, cmd.UserID, cmd.GoodsID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("goods name cannot be empty")
		}
		goods.Name = *cmd.Name
	}
	if cmd.Category != nil {
		goods.Category = *cmd.Category
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		goods.Price = *cmd.Price
	}
	if cmd.StockQuantity != nil {
		if *cmd.StockQuantity < 0 {
			return nil, fmt.Errorf("stock quantity cannot be negative")
		}
		goods.StockQuantity = *cmd.StockQuantity
	}
	goods.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, goods); err != nil {
		return nil, fmt.Errorf("failed to update goods: %w", err)
	}

	return goods, nil
}
