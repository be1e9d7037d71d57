package command

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// DeleteGoodsCommand represents the command to delete a goods item
type DeleteGoodsCommand struct {
	UserID  uint
	GoodsID uint
}

// DeleteGoodsHandler handles goods deletion
type DeleteGoodsHandler struct {
	repo domain.GoodsRepository
}

// NewDeleteGoodsHandler creates a new delete goods handler
func NewDeleteGoodsHandler(repo domain.GoodsRepository) *DeleteGoodsHandler {
	return &DeleteGoodsHandler{repo: repo}
}

// Handle executes the delete goods command
func (h *DeleteGoodsHandler) Handle(ctx context.Context, cmd DeleteGoodsCommand) error {
	if cmd.GoodsID == 0 {
		return fmt.Errorf("goods id is required")
	}
	return h.repo.Delete(ctx, cmd.UserID, cmd.GoodsID)
}
