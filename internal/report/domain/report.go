package domain

import (
	"context"
	"time"
)

// LowStockItem is one row of the low stock ranking.
type LowStockItem struct {
	GoodsID       uint   `json:"goods_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	StockQuantity int    `json:"stock_quantity"`
}

// TopSellingItem aggregates sold quantity per goods name. GoodsID is the
// lowest goods id carrying that name.
type TopSellingItem struct {
	GoodsID      uint    `json:"goods_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// DailySalesPoint is one day of the sales time series.
type DailySalesPoint struct {
	Date         time.Time `json:"date"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// ReportRepository exposes read-only aggregates over goods and sales.
type ReportRepository interface {
	LowStock(ctx context.Context, userID uint, limit int) ([]LowStockItem, error)
	MonthlyRevenue(ctx context.Context, userID uint, year int, month time.Month) (float64, error)
	TopSeller(ctx context.Context, userID uint, start, end time.Time) (*TopSellingItem, error)
	DailySeries(ctx context.Context, userID uint, start, end time.Time) ([]DailySalesPoint, error)
}
