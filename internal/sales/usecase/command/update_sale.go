package command

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/sales/domain"
)

// UpdateSaleCommand represents the command to edit a recorded sale.
// Quantity and date edits are bookkeeping corrections: they do not re-run
// the stock deduction and do not recompute total_profit.
type UpdateSaleCommand struct {
	UserID   uint
	SaleID   uint
	Quantity *int
	SaleDate *time.Time
}

// UpdateSaleHandler handles sale updates
type UpdateSaleHandler struct {
	repo domain.SalesRepository
}

// NewUpdateSaleHandler creates a new update sale handler
func NewUpdateSaleHandler(repo domain.SalesRepository) *UpdateSaleHandler {
	return &UpdateSaleHandler{repo: repo}
}

// Handle executes the update sale command
func (h *UpdateSaleHandler) Handle(ctx context.Context, cmd UpdateSaleCommand) (*domain.Sale, error) {
	if cmd.SaleID == 0 {
		return nil, fmt.Errorf("%w: sale id is required", domain.ErrInvalidInput)
	}

	sale, err := h.repo.FindByID(ctx, cmd.UserID, cmd.SaleID)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity != nil {
		if *cmd.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		sale.Quantity = *cmd.Quantity
	}
	if cmd.SaleDate != nil {
		sale.SaleDate = *cmd.SaleDate
	}
	sale.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sale, nil
}
