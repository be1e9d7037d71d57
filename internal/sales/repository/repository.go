package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/sales/domain"
)

// GormSalesRepository implements SalesRepository using GORM
type GormSalesRepository struct {
	db *gorm.DB
}

// NewGormSalesRepository creates a new GORM sales repository
func NewGormSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

func (r *GormSalesRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Sale{})
}

// RecordSale executes the stock ledger transaction. The stock decrement uses
// a single conditional UPDATE (stock_quantity >= quantity in the WHERE
// clause) so two concurrent sales on the same goods row cannot both pass the
// check and drive stock negative.
func (r *GormSalesRepository) RecordSale(ctx context.Context, userID, goodsID uint, quantity int, saleDate time.Time) (*domain.Sale, error) {
	var sale *domain.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goods goodsdomain.Goods
		if err := tx.Where("id = ? AND user_id = ?", goodsID, userID).First(&goods).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return goodsdomain.ErrNotFound
			}
			return fmt.Errorf("failed to load goods: %w", err)
		}

		res := tx.Model(&goodsdomain.Goods{}).
			Where("id = ? AND user_id = ? AND stock_quantity >= ?", goodsID, userID, quantity).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to deduct stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.InsufficientStockError{
				Available: goods.StockQuantity,
				Requested: quantity,
			}
		}

		sale = &domain.Sale{
			UserID:      userID,
			GoodsID:     goodsID,
			Quantity:    quantity,
			SaleDate:    saleDate,
			TotalProfit: goods.Price * float64(quantity),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// FindByID retrieves a sale by id, scoped to its owner
func (r *GormSalesRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &sale, nil
}

// FindAll retrieves sales for a user, optionally filtered by goods name and
// sale date range
func (r *GormSalesRepository) FindAll(ctx context.Context, userID uint, filter domain.SalesFilter) ([]domain.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Sale{}).Where("sales.user_id = ?", userID)

	if filter.GoodsName != "" {
		query = query.
			Joins("JOIN goods ON goods.id = sales.goods_id").
			Where("goods.name ILIKE ?", "%"+filter.GoodsName+"%")
	}
	if filter.DateStart != nil {
		query = query.Where("sales.sale_date >= ?", *filter.DateStart)
	}
	if filter.DateEnd != nil {
		query = query.Where("sales.sale_date <= ?", *filter.DateEnd)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var sales []domain.Sale
	if err := query.Order("sales.sale_date DESC").Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find sales: %w", err)
	}
	return sales, total, nil
}

// Update persists changes to an existing sale row. Stock is not re-adjusted.
func (r *GormSalesRepository) Update(ctx context.Context, sale *domain.Sale) error {
	if err := r.db.WithContext(ctx).Save(sale).Error; err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	return nil
}

// Delete soft-deletes a sale row scoped to its owner. Deducted stock is not
// restored.
func (r *GormSalesRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Sale{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete sale: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
