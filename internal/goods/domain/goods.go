package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a goods row is absent or owned by another user.
var ErrNotFound = errors.New("goods not found")

// Goods represents an inventory item owned by a user
type Goods struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	Category      string         `json:"category"`
	Price         float64        `json:"price" gorm:"not null"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Goods) TableName() string {
	return "goods"
}

// GoodsRepository defines the contract for goods data access.
// All lookups are scoped to the owning user; a row owned by someone else is
// indistinguishable from an absent one (ErrNotFound).
type GoodsRepository interface {
	Create(ctx context.Context, goods *Goods) error
	FindByID(ctx context.Context, userID, id uint) (*Goods, error)
	FindAll(ctx context.Context, userID uint, search string, limit, offset int) ([]Goods, int64, error)
	Update(ctx context.Context, goods *Goods) error
	Delete(ctx context.Context, userID, id uint) error
}
