package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	goodsdomain "github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/sales/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&goodsdomain.Goods{}, &domain.Sale{}))
	return db
}

func seedGoods(t *testing.T, db *gorm.DB, userID uint, name string, price float64, stock int) *goodsdomain.Goods {
	t.Helper()
	goods := &goodsdomain.Goods{UserID: userID, Name: name, Price: price, StockQuantity: stock}
	require.NoError(t, db.Create(goods).Error)
	return goods
}

func reloadGoods(t *testing.T, db *gorm.DB, id uint) *goodsdomain.Goods {
	t.Helper()
	var goods goodsdomain.Goods
	require.NoError(t, db.First(&goods, id).Error)
	return &goods
}

func TestRecordSaleDeductsStockAndSnapshotsProfit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	goods := seedGoods(t, db, 1, "Kopi Sachet", 2500, 10)

	saleDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	sale, err := repo.RecordSale(context.Background(), 1, goods.ID, 3, saleDate)

	require.NoError(t, err)
	assert.Equal(t, 7500.0, sale.TotalProfit)
	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, 7, reloadGoods(t, db, goods.ID).StockQuantity)

	var count int64
	require.NoError(t, db.Model(&domain.Sale{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordSaleProfitSurvivesPriceChange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	goods := seedGoods(t, db, 1, "Teh Botol", 4000, 10)

	sale, err := repo.RecordSale(context.Background(), 1, goods.ID, 2, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Model(&goodsdomain.Goods{}).
		Where("id = ?", goods.ID).
		Update("price", 9000).Error)

	reloaded, err := repo.FindByID(context.Background(), 1, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, reloaded.TotalProfit)
}

func TestRecordSaleInsufficientStockHasZeroEffect(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	goods := seedGoods(t, db, 1, "Gula", 15000, 2)

	_, err := repo.RecordSale(context.Background(), 1, goods.ID, 5, time.Now())

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	assert.Equal(t, 2, reloadGoods(t, db, goods.ID).StockQuantity)
	var count int64
	require.NoError(t, db.Model(&domain.Sale{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected sale must leave no ledger row")
}

func TestRecordSaleDrainsStockToZeroNotBelow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	goods := seedGoods(t, db, 1, "Beras", 12000, 5)

	_, err := repo.RecordSale(context.Background(), 1, goods.ID, 5, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, reloadGoods(t, db, goods.ID).StockQuantity)

	_, err = repo.RecordSale(context.Background(), 1, goods.ID, 1, time.Now())
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, reloadGoods(t, db, goods.ID).StockQuantity)
}

func TestRecordSaleScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesRepository(db)
	goods := seedGoods(t, db, 1, "Minyak", 20000, 10)

	_, err := repo.RecordSale(context.Background(), 2, goods.ID, 1, time.Now())
	assert.ErrorIs(t, err, goodsdomain.ErrNotFound)
	assert.Equal(t, 10, reloadGoods(t, db, goods.ID).StockQuantity)

	_, err = repo.RecordSale(context.Background(), 1, 999, 1, time.Now())
	assert.ErrorIs(t, err, goodsdomain.ErrNotFound)
}
