package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a sale is absent or owned by another user.
	ErrNotFound = errors.New("sale not found")
	// ErrInvalidInput marks rejected arguments (non-positive quantity,
	// malformed identifiers). Wrap with fmt.Errorf("%w: ...", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")
)

// InsufficientStockError is returned when a sale requests more units than the
// goods row holds. It carries both amounts so callers can report them.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available, %d requested", e.Available, e.Requested)
}

// Sale represents a recorded sale transaction against a goods item.
// TotalProfit is a snapshot of price × quantity taken when the sale is
// recorded; later price changes on the goods never alter it.
type Sale struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	GoodsID     uint           `json:"goods_id" gorm:"not null;index"`
	Quantity    int            `json:"quantity" gorm:"not null"`
	SaleDate    time.Time      `json:"sale_date" gorm:"not null;index"`
	TotalProfit float64        `json:"total_profit" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SalesFilter narrows FindAll results
type SalesFilter struct {
	GoodsName string
	DateStart *time.Time
	DateEnd   *time.Time
	Limit     int
	Offset    int
}

// SalesRepository defines the contract for sales data access.
//
// RecordSale is the stock ledger transaction: within one database
// transaction it loads the goods row (ErrNotFound from the goods domain when
// absent or foreign-owned), decrements stock_quantity with a guard condition
// (stock_quantity >= quantity, *InsufficientStockError when the guard
// fails), snapshots total_profit and inserts the sale row. Either both the
// deduction and the sale become visible or neither does. It is the only path
// that decrements stock.
type SalesRepository interface {
	RecordSale(ctx context.Context, userID, goodsID uint, quantity int, saleDate time.Time) (*Sale, error)
	FindByID(ctx context.Context, userID, id uint) (*Sale, error)
	FindAll(ctx context.Context, userID uint, filter SalesFilter) ([]Sale, int64, error)
	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, userID, id uint) error
}
