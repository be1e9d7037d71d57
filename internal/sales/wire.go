//go:build wireinject
// +build wireinject

package sales

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/sales/delivery/http"
	"github.com/warungio/stockpilot/internal/sales/domain"
	"github.com/warungio/stockpilot/internal/sales/repository"
	"github.com/warungio/stockpilot/internal/sales/usecase/command"
)

// ProvideSalesRepository provides the traced sales repository
func ProvideSalesRepository(db *gorm.DB) domain.SalesRepository {
	return repository.NewTracingSalesRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideSalesRepository,
)

// InitializeHTTPHandler initializes the sales HTTP handler
func InitializeHTTPHandler(db *gorm.DB, publisher command.SaleEventPublisher) (*http.SalesHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewSalesHandler,
	)
	return nil, nil
}
