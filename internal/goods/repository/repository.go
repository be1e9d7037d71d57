package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

// GormGoodsRepository implements GoodsRepository using GORM
type GormGoodsRepository struct {
	db *gorm.DB
}

// NewGormGoodsRepository creates a new GORM goods repository
func NewGormGoodsRepository(db *gorm.DB) *GormGoodsRepository {
	return &GormGoodsRepository{db: db}
}

func (r *GormGoodsRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Goods{})
}

// Create inserts a new goods row
func (r *GormGoodsRepository) Create(ctx context.Context, goods *domain.Goods) error {
	if err := r.db.WithContext(ctx).Create(goods).Error; err != nil {
		return fmt.Errorf("failed to create goods: %w", err)
	}
	return nil
}

// FindByID retrieves a goods row by id, scoped to its owner
func (r *GormGoodsRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Goods, error) {
	var goods domain.Goods
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goods).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goods: %w", err)
	}
	return &goods, nil
}

// FindAll retrieves goods for a user with pagination and optional name/category search
func (r *GormGoodsRepository) FindAll(ctx context.Context, userID uint, search string, limit, offset int) ([]domain.Goods, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Goods{}).Where("user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR category ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count goods: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var goods []domain.Goods
	if err := query.Order("created_at DESC").Find(&goods).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find goods: %w", err)
	}
	return goods, total, nil
}

// Update persists changes to an existing goods row
func (r *GormGoodsRepository) Update(ctx context.Context, goods *domain.Goods) error {
	if err := r.db.WithContext(ctx).Save(goods).Error; err != nil {
		return fmt.Errorf("failed to update goods: %w", err)
	}
	return nil
}

// Delete soft-deletes a goods row scoped to its owner. Sales referencing it
// keep their goods_id and are not cascaded.
func (r *GormGoodsRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Goods{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete goods: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
