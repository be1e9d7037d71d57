package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/sales/domain"
)

var tracer = otel.Tracer("sales-repository")

// TracingSalesRepository wraps GormSalesRepository with tracing spans
type TracingSalesRepository struct {
	*GormSalesRepository
}

// NewTracingSalesRepository creates a sales repository with tracing
func NewTracingSalesRepository(db *gorm.DB) *TracingSalesRepository {
	return &TracingSalesRepository{GormSalesRepository: NewGormSalesRepository(db)}
}

func (r *TracingSalesRepository) RecordSale(ctx context.Context, userID, goodsID uint, quantity int, saleDate time.Time) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.sales.RecordSale",
		trace.WithAttributes(
			attribute.Int("goods.id", int(goodsID)),
			attribute.Int("sale.quantity", quantity),
		),
	)
	defer span.End()

	sale, err := r.GormSalesRepository.RecordSale(ctx, userID, goodsID, quantity, saleDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("sale.id", int(sale.ID)),
		attribute.Float64("sale.total_profit", sale.TotalProfit),
	)
	return sale, nil
}

func (r *TracingSalesRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.sales.FindByID",
		trace.WithAttributes(attribute.Int("sale.id", int(id))),
	)
	defer span.End()

	sale, err := r.GormSalesRepository.FindByID(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return sale, nil
}

func (r *TracingSalesRepository) FindAll(ctx context.Context, userID uint, filter domain.SalesFilter) ([]domain.Sale, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.sales.FindAll")
	defer span.End()

	sales, total, err := r.GormSalesRepository.FindAll(ctx, userID, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int64("sales.total", total))
	return sales, total, nil
}

func (r *TracingSalesRepository) Update(ctx context.Context, sale *domain.Sale) error {
	ctx, span := tracer.Start(ctx, "repository.sales.Update",
		trace.WithAttributes(attribute.Int("sale.id", int(sale.ID))),
	)
	defer span.End()

	if err := r.GormSalesRepository.Update(ctx, sale); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingSalesRepository) Delete(ctx context.Context, userID, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.sales.Delete",
		trace.WithAttributes(attribute.Int("sale.id", int(id))),
	)
	defer span.End()

	if err := r.GormSalesRepository.Delete(ctx, userID, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
