package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/forecast/domain"
)

// GormForecastRepository implements ForecastRepository using GORM
type GormForecastRepository struct {
	db *gorm.DB
}

// NewGormForecastRepository creates a new forecast repository
func NewGormForecastRepository(db *gorm.DB) (*GormForecastRepository, error) {
	if err := db.AutoMigrate(&domain.RestockInference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate restock_inferences table: %w", err)
	}
	return &GormForecastRepository{db: db}, nil
}

// Save persists one inference run.
func (r *GormForecastRepository) Save(ctx context.Context, inference *domain.RestockInference) error {
	if err := r.db.WithContext(ctx).Create(inference).Error; err != nil {
		return fmt.Errorf("failed to save inference: %w", err)
	}
	return nil
}

// FindLatest returns the most recent inference for the goods.
func (r *GormForecastRepository) FindLatest(ctx context.Context, userID, goodsID uint) (*domain.RestockInference, error) {
	var inference domain.RestockInference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND goods_id = ?", userID, goodsID).
		Order("created_at DESC").
		First(&inference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest inference: %w", err)
	}
	return &inference, nil
}
