package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

type fakeGoodsRepo struct {
	goods *domain.Goods
	err   error

	created *domain.Goods
	updated *domain.Goods
	deleted uint
}

func (f *fakeGoodsRepo) Create(ctx context.Context, goods *domain.Goods) error {
	if f.err != nil {
		return f.err
	}
	goods.ID = 42
	f.created = goods
	return nil
}

func (f *fakeGoodsRepo) FindByID(ctx context.Context, userID, id uint) (*domain.Goods, error) {
	if f.goods == nil {
		return nil, domain.ErrNotFound
	}
	copied := *f.goods
	return &copied, f.err
}

func (f *fakeGoodsRepo) FindAll(ctx context.Context, userID uint, search string, limit, offset int) ([]domain.Goods, int64, error) {
	return nil, 0, f.err
}

func (f *fakeGoodsRepo) Update(ctx context.Context, goods *domain.Goods) error {
	f.updated = goods
	return f.err
}

func (f *fakeGoodsRepo) Delete(ctx context.Context, userID, id uint) error {
	f.deleted = id
	return f.err
}

func TestCreateGoodsValidatesInput(t *testing.T) {
	repo := &fakeGoodsRepo{}
	h := NewCreateGoodsHandler(repo)

	tests := []struct {
		name string
		cmd  CreateGoodsCommand
	}{
		{"missing user", CreateGoodsCommand{Name: "Kopi"}},
		{"missing name", CreateGoodsCommand{UserID: 1}},
		{"negative price", CreateGoodsCommand{UserID: 1, Name: "Kopi", Price: -1}},
		{"negative stock", CreateGoodsCommand{UserID: 1, Name: "Kopi", StockQuantity: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			assert.Error(t, err)
		})
	}
	assert.Nil(t, repo.created)
}

func TestCreateGoodsSuccess(t *testing.T) {
	repo := &fakeGoodsRepo{}
	h := NewCreateGoodsHandler(repo)

	goods, err := h.Handle(context.Background(), CreateGoodsCommand{
		UserID:        7,
		Name:          "Kopi Sachet",
		Category:      "Minuman",
		Price:         1500,
		StockQuantity: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), goods.ID)
	assert.Equal(t, uint(7), goods.UserID)
	assert.Equal(t, "Kopi Sachet", goods.Name)
	assert.Equal(t, 100, goods.StockQuantity)
	assert.False(t, goods.CreatedAt.IsZero())
}

func TestUpdateGoodsPartialFields(t *testing.T) {
	repo := &fakeGoodsRepo{goods: &domain.Goods{
		ID: 3, UserID: 7, Name: "Teh Botol", Category: "Minuman", Price: 4000, StockQuantity: 12,
	}}
	h := NewUpdateGoodsHandler(repo)

	newPrice := 4500.0
	goods, err := h.Handle(context.Background(), UpdateGoodsCommand{
		UserID:  7,
		GoodsID: 3,
		Price:   &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 4500.0, goods.Price)
	assert.Equal(t, "Teh Botol", goods.Name, "unset fields stay untouched")
	assert.Equal(t, 12, goods.StockQuantity, "unset fields stay untouched")
	require.NotNil(t, repo.updated)
}

func TestUpdateGoodsRejectsEmptyName(t *testing.T) {
	repo := &fakeGoodsRepo{goods: &domain.Goods{ID: 3, UserID: 7, Name: "Teh Botol"}}
	h := NewUpdateGoodsHandler(repo)

	empty := ""
	_, err := h.Handle(context.Background(), UpdateGoodsCommand{UserID: 7, GoodsID: 3, Name: &empty})

	assert.Error(t, err)
	assert.Nil(t, repo.updated)
}

func TestUpdateGoodsNotFound(t *testing.T) {
	repo := &fakeGoodsRepo{}
	h := NewUpdateGoodsHandler(repo)

	newName := "Gula"
	_, err := h.Handle(context.Background(), UpdateGoodsCommand{UserID: 7, GoodsID: 99, Name: &newName})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
