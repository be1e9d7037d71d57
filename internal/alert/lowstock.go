package alert

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/kafka"
	"github.com/warungio/stockpilot/pkg/logger"
)

var lowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "low_stock_alerts_total",
	Help: "Total number of low stock alerts raised after recorded sales",
})

// DefaultThreshold is the stock level at or below which an alert is raised.
const DefaultThreshold = 5

// LowStockWatcher inspects remaining stock after each recorded sale and
// raises an alert when it drops to the threshold or below.
type LowStockWatcher struct {
	goodsRepo goodsdomain.GoodsRepository
	threshold int
}

// NewLowStockWatcher creates a watcher with the given threshold.
// A non-positive threshold falls back to DefaultThreshold.
func NewLowStockWatcher(goodsRepo goodsdomain.GoodsRepository, threshold int) *LowStockWatcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &LowStockWatcher{goodsRepo: goodsRepo, threshold: threshold}
}

// HandleSaleRecorded is registered as the consumer handler for sale events.
func (w *LowStockWatcher) HandleSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error {
	goods, err := w.goodsRepo.FindByID(ctx, event.UserID, event.GoodsID)
	if err != nil {
		return fmt.Errorf("failed to load goods %d for low stock check: %w", event.GoodsID, err)
	}

	if goods.StockQuantity > w.threshold {
		return nil
	}

	lowStockAlerts.Inc()
	logger.Warn(ctx).
		Uint("goods_id", goods.ID).
		Uint("user_id", event.UserID).
		Str("goods_name", goods.Name).
		Int("stock_quantity", goods.StockQuantity).
		Int("threshold", w.threshold).
		Msg("Low stock alert")

	return nil
}
