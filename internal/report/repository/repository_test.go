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
	salesdomain "github.com/warungio/stockpilot/internal/sales/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&goodsdomain.Goods{}, &salesdomain.Sale{}))
	return db
}

func seedGoods(t *testing.T, db *gorm.DB, userID uint, name string, stock int) *goodsdomain.Goods {
	t.Helper()
	goods := &goodsdomain.Goods{UserID: userID, Name: name, Price: 1000, StockQuantity: stock}
	require.NoError(t, db.Create(goods).Error)
	return goods
}

func seedSale(t *testing.T, db *gorm.DB, userID, goodsID uint, quantity int, profit float64, date time.Time) {
	t.Helper()
	sale := &salesdomain.Sale{
		UserID:      userID,
		GoodsID:     goodsID,
		Quantity:    quantity,
		SaleDate:    date,
		TotalProfit: profit,
	}
	require.NoError(t, db.Create(sale).Error)
}

func TestTopSellerSumsQuantitiesPerName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)

	kopiA := seedGoods(t, db, 1, "Kopi", 10)
	kopiB := seedGoods(t, db, 1, "Kopi", 10)
	teh := seedGoods(t, db, 1, "Teh", 10)

	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedSale(t, db, 1, kopiA.ID, 5, 5000, date)
	seedSale(t, db, 1, kopiB.ID, 5, 5000, date)
	seedSale(t, db, 1, teh.ID, 7, 7000, date)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	item, err := repo.TopSeller(context.Background(), 1, start, end)

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Kopi", item.Name, "same-named goods sum together")
	assert.Equal(t, 10, item.QuantitySold)
	assert.Equal(t, 10000.0, item.Revenue)
	assert.Equal(t, kopiA.ID, item.GoodsID)
}

func TestTopSellerNilWhenRangeEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)

	goods := seedGoods(t, db, 1, "Kopi", 10)
	seedSale(t, db, 1, goods.ID, 5, 5000, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	item, err := repo.TopSeller(context.Background(), 1, start, end)

	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestLowStockOrdersByRemainingStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)

	seedGoods(t, db, 1, "Beras", 8)
	seedGoods(t, db, 1, "Gula", 2)
	seedGoods(t, db, 1, "Minyak", 5)
	seedGoods(t, db, 2, "Kopi", 0) // other user, excluded

	items, err := repo.LowStock(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Gula", items[0].Name)
	assert.Equal(t, "Minyak", items[1].Name)
}

func TestMonthlyRevenueSumsOnlyTheMonth(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)

	goods := seedGoods(t, db, 1, "Kopi", 10)
	seedSale(t, db, 1, goods.ID, 1, 3000, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, 1, goods.ID, 1, 4000, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))
	seedSale(t, db, 1, goods.ID, 1, 9000, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))

	revenue, err := repo.MonthlyRevenue(context.Background(), 1, 2026, time.August)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, revenue)

	revenue, err = repo.MonthlyRevenue(context.Background(), 1, 2026, time.June)
	require.NoError(t, err)
	assert.Zero(t, revenue)
}
