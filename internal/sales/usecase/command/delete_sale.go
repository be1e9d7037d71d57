package command

import (
	"context"
	"fmt"

	"github.com/warungio/stockpilot/internal/sales/domain"
)

// DeleteSaleCommand represents the command to delete a recorded sale.
// Deleting a sale does not restore the deducted stock.
type DeleteSaleCommand struct {
	UserID uint
	SaleID uint
}

// DeleteSaleHandler handles sale deletion
type DeleteSaleHandler struct {
	repo domain.SalesRepository
}

// NewDeleteSaleHandler creates a new delete sale handler
func NewDeleteSaleHandler(repo domain.SalesRepository) *DeleteSaleHandler {
	return &DeleteSaleHandler{repo: repo}
}

// Handle executes the delete sale command
func (h *DeleteSaleHandler) Handle(ctx context.Context, cmd DeleteSaleCommand) error {
	if cmd.SaleID == 0 {
		return fmt.Errorf("%w: sale id is required", domain.ErrInvalidInput)
	}
	return h.repo.Delete(ctx, cmd.UserID, cmd.SaleID)
}
