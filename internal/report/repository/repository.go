package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/report/domain"
)

// GormReportRepository computes aggregates directly in the database.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new report repository.
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// LowStock returns goods ordered by remaining stock, lowest first.
func (r *GormReportRepository) LowStock(ctx context.Context, userID uint, limit int) ([]domain.LowStockItem, error) {
	if limit <= 0 {
		limit = 10
	}

	var items []domain.LowStockItem
	err := r.db.WithContext(ctx).
		Table("goods").
		Select("id AS goods_id, name, category, stock_quantity").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("stock_quantity ASC, id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock ranking: %w", err)
	}
	return items, nil
}

// MonthlyRevenue sums total profit over one calendar month.
func (r *GormReportRepository) MonthlyRevenue(ctx context.Context, userID uint, year int, month time.Month) (float64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var revenue float64
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("COALESCE(SUM(total_profit), 0)").
		Where("user_id = ? AND sale_date >= ? AND sale_date < ? AND deleted_at IS NULL", userID, start, end).
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	return revenue, nil
}

// TopSeller returns the goods name with the highest sold quantity in the
// range, or nil when no sales fall inside it. Grouping is by name, so sales
// of distinct goods rows sharing a name sum together; GoodsID carries the
// lowest id among them.
func (r *GormReportRepository) TopSeller(ctx context.Context, userID uint, start, end time.Time) (*domain.TopSellingItem, error) {
	var item domain.TopSellingItem
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("MIN(sales.goods_id) AS goods_id, goods.name AS name, SUM(sales.quantity) AS quantity_sold, SUM(sales.total_profit) AS revenue").
		Joins("JOIN goods ON goods.id = sales.goods_id").
		Where("sales.user_id = ? AND sales.sale_date >= ? AND sales.sale_date < ? AND sales.deleted_at IS NULL", userID, start, end).
		Group("goods.name").
		Order("quantity_sold DESC").
		Limit(1).
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query top seller: %w", err)
	}
	return &item, nil
}

// DailySeries groups sold quantity and revenue per day, ascending by date.
func (r *GormReportRepository) DailySeries(ctx context.Context, userID uint, start, end time.Time) ([]domain.DailySalesPoint, error) {
	var points []domain.DailySalesPoint
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("DATE(sale_date) AS date, SUM(quantity) AS quantity_sold, SUM(total_profit) AS revenue").
		Where("user_id = ? AND sale_date >= ? AND sale_date < ? AND deleted_at IS NULL", userID, start, end).
		Group("DATE(sale_date)").
		Order("date ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales series: %w", err)
	}
	return points, nil
}
