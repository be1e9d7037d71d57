package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungio/stockpilot/internal/sales/domain"
	"github.com/warungio/stockpilot/kafka"
)

// fakeSalesRepo records the last ledger call and replays a scripted result.
type fakeSalesRepo struct {
	sale *domain.Sale
	err  error

	recordCalled bool
	gotUserID    uint
	gotGoodsID   uint
	gotQuantity  int
	gotSaleDate  time.Time
}

func (f *fakeSalesRepo) RecordSale(ctx context.Context, userID, goodsID uint, quantity int, saleDate time.Time) (*domain.Sale, error) {
	f.recordCalled = true
	f.gotUserID = userID
	f.gotGoodsID = goodsID
	f.gotQuantity = quantity
	f.gotSaleDate = saleDate
	return f.sale, f.err
}

func (f *fakeSalesRepo) FindByID(ctx context.Context, userID, id uint) (*domain.Sale, error) {
	return f.sale, f.err
}

func (f *fakeSalesRepo) FindAll(ctx context.Context, userID uint, filter domain.SalesFilter) ([]domain.Sale, int64, error) {
	return nil, 0, f.err
}

func (f *fakeSalesRepo) Update(ctx context.Context, sale *domain.Sale) error { return f.err }

func (f *fakeSalesRepo) Delete(ctx context.Context, userID, id uint) error { return f.err }

type fakePublisher struct {
	events []kafka.SaleRecordedEvent
	err    error
}

func (f *fakePublisher) PublishSaleRecorded(ctx context.Context, event kafka.SaleRecordedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func TestRecordSaleValidatesInput(t *testing.T) {
	repo := &fakeSalesRepo{}
	h := NewRecordSaleHandler(repo, nil)

	tests := []struct {
		name string
		cmd  RecordSaleCommand
	}{
		{"missing user", RecordSaleCommand{GoodsID: 1, Quantity: 1}},
		{"missing goods", RecordSaleCommand{UserID: 1, Quantity: 1}},
		{"zero quantity", RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: 0}},
		{"negative quantity", RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.False(t, repo.recordCalled, "invalid commands must not reach the ledger")
}

func TestRecordSaleSuccess(t *testing.T) {
	saleDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeSalesRepo{sale: &domain.Sale{
		ID:          9,
		UserID:      3,
		GoodsID:     7,
		Quantity:    2,
		SaleDate:    saleDate,
		TotalProfit: 30000,
	}}
	pub := &fakePublisher{}
	h := NewRecordSaleHandler(repo, pub)

	sale, err := h.Handle(context.Background(), RecordSaleCommand{
		UserID: 3, GoodsID: 7, Quantity: 2, SaleDate: saleDate,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(9), sale.ID)
	assert.Equal(t, uint(3), repo.gotUserID)
	assert.Equal(t, uint(7), repo.gotGoodsID)
	assert.Equal(t, 2, repo.gotQuantity)
	assert.Equal(t, saleDate, repo.gotSaleDate)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, uint(9), event.SaleID)
	assert.Equal(t, uint(7), event.GoodsID)
	assert.Equal(t, uint(3), event.UserID)
	assert.Equal(t, 2, event.Quantity)
	assert.Equal(t, float64(30000), event.TotalProfit)
}

func TestRecordSaleDefaultsSaleDateToNow(t *testing.T) {
	repo := &fakeSalesRepo{sale: &domain.Sale{ID: 1}}
	h := NewRecordSaleHandler(repo, nil)

	before := time.Now()
	_, err := h.Handle(context.Background(), RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: 1})
	require.NoError(t, err)

	assert.False(t, repo.gotSaleDate.Before(before))
	assert.False(t, repo.gotSaleDate.After(time.Now()))
}

func TestRecordSaleInsufficientStockPassthrough(t *testing.T) {
	stockErr := &domain.InsufficientStockError{Available: 2, Requested: 5}
	repo := &fakeSalesRepo{err: stockErr}
	pub := &fakePublisher{}
	h := NewRecordSaleHandler(repo, pub)

	_, err := h.Handle(context.Background(), RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: 5})

	var got *domain.InsufficientStockError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 2, got.Available)
	assert.Equal(t, 5, got.Requested)
	assert.Empty(t, pub.events, "failed sales must not publish events")
}

func TestRecordSalePublishFailureDoesNotFailSale(t *testing.T) {
	repo := &fakeSalesRepo{sale: &domain.Sale{ID: 4}}
	pub := &fakePublisher{err: assert.AnError}
	h := NewRecordSaleHandler(repo, pub)

	sale, err := h.Handle(context.Background(), RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: 1})

	require.NoError(t, err, "event publishing is best effort")
	assert.Equal(t, uint(4), sale.ID)
}

func TestRecordSaleNilPublisher(t *testing.T) {
	repo := &fakeSalesRepo{sale: &domain.Sale{ID: 5}}
	h := NewRecordSaleHandler(repo, nil)

	sale, err := h.Handle(context.Background(), RecordSaleCommand{UserID: 1, GoodsID: 1, Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, uint(5), sale.ID)
}
