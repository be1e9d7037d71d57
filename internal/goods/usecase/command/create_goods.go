package command

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// CreateGoodsCommand represents the command to create a new goods item
type CreateGoodsCommand struct {
	UserID        uint
	Name          string
	Category      string
	Price         float64
	StockQuantity int
}

// CreateGoodsHandler handles goods creation
type CreateGoodsHandler struct {
	repo domain.GoodsRepository
}

// NewCreateGoodsHandler creates a new create goods handler
func NewCreateGoodsHandler(repo domain.GoodsRepository) *CreateGoodsHandler {
	return &CreateGoodsHandler{repo: repo}
}

// Handle executes the create goods command
func (h *CreateGoodsHandler) Handle(ctx context.Context, cmd CreateGoodsCommand) (*domain.Goods, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("goods name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.StockQuantity < 0 {
		return nil, fmt.Errorf("stock quantity cannot be negative")
	}

	goods := &domain.Goods{
		UserID:        cmd.UserID,
		Name:          cmd.Name,
		Category:      cmd.Category,
		Price:         cmd.Price,
		StockQuantity: cmd.StockQuantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.repo.Create(ctx, goods); err != nil {
		return nil, fmt.Errorf("failed to create goods: %w", err)
	}

	return goods, nil
}
