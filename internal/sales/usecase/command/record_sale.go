package command

import (
	"context"
	"fmt"
	"time"

	"github.com/warungio/stockpilot/internal/sales/domain"
	"github.com/warungio/stockpilot/kafka"
	"github.com/warungio/stockpilot/pkg/logger"
)

// RecordSaleCommand represents the command to record a sale against a goods
// item, deducting its stock atomically.
type RecordSaleCommand struct {
	UserID   uint
	GoodsID  uint
	Quantity int
	SaleDate time.Time
}

// SaleEventPublisher publishes sale lifecycle events. A nil publisher is
// allowed; events are then skipped.
type SaleEventPublisher interface {
	PublishSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error
}

// RecordSaleHandler handles the stock ledger entry point
type RecordSaleHandler struct {
	repo      domain.SalesRepository
	publisher SaleEventPublisher
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(repo domain.SalesRepository, publisher SaleEventPublisher) *RecordSaleHandler {
	return &RecordSaleHandler{repo: repo, publisher: publisher}
}

// Handle executes the record sale command. The deduction and the sale insert
// commit as one unit inside the repository transaction; a failed guard check
// leaves both the goods row and the sales table untouched.
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) (*domain.Sale, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if cmd.GoodsID == 0 {
		return nil, fmt.Errorf("%w: goods id is required", domain.ErrInvalidInput)
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	saleDate := cmd.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	sale, err := h.repo.RecordSale(ctx, cmd.UserID, cmd.GoodsID, cmd.Quantity, saleDate)
	if err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.SaleRecordedEvent{
			SaleID:      sale.ID,
			UserID:      sale.UserID,
			GoodsID:     sale.GoodsID,
			Quantity:    sale.Quantity,
			TotalProfit: sale.TotalProfit,
			SaleDate:    sale.SaleDate,
		}
		// Event publication is best-effort; the sale is already committed.
		if err := h.publisher.PublishSaleRecorded(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("sale_id", sale.ID).
				Msg("Failed to publish sale recorded event")
		}
	}

	return sale, nil
}
