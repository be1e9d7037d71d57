//go:build wireinject
// +build wireinject

package goods

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/goods/delivery/http"
	"github.com/warungio/stockpilot/internal/goods/domain"
	"github.com/warungio/stockpilot/internal/goods/repository"
)

// ProvideGoodsRepository provides the traced goods repository
func ProvideGoodsRepository(db *gorm.DB) domain.GoodsRepository {
	return repository.NewTracingGoodsRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideGoodsRepository,
)

// InitializeHTTPHandler initializes the goods HTTP handler
func InitializeHTTPHandler(db *gorm.DB) (*http.GoodsHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewGoodsHandler,
	)
	return nil, nil
}
