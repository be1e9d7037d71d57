package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/warungio/stockpilot/internal/goods/domain"
)

var tracer = otel.Tracer("goods-repository")

// TracingGoodsRepository wraps GormGoodsRepository with tracing spans
type TracingGoodsRepository struct {
	*GormGoodsRepository
}

// NewTracingGoodsRepository creates a goods repository with tracing
func NewTracingGoodsRepository(db *gorm.DB) *TracingGoodsRepository {
	return &TracingGoodsRepository{GormGoodsRepository: NewGormGoodsRepository(db)}
}

func (r *TracingGoodsRepository) Create(ctx context.Context, goods *domain.Goods) error {
	ctx, span := tracer.Start(ctx, "repository.goods.Create",
		trace.WithAttributes(
			attribute.String("goods.name", goods.Name),
			attribute.Float64("goods.price", goods.Price),
			attribute.Int("goods.stock", goods.StockQuantity),
		),
	)
	defer span.End()

	if err := r.GormGoodsRepository.Create(ctx, goods); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("goods.id", int(goods.ID)))
	return nil
}

func (r *TracingGoodsRepository) FindByID(ctx context.Context, userID, id uint) (*domain.Goods, error) {
	ctx, span := tracer.Start(ctx, "repository.goods.FindByID",
		trace.WithAttributes(attribute.Int("goods.id", int(id))),
	)
	defer span.End()

	goods, err := r.GormGoodsRepository.FindByID(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("goods.name", goods.Name))
	return goods, nil
}

func (r *TracingGoodsRepository) FindAll(ctx context.Context, userID uint, search string, limit, offset int) ([]domain.Goods, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.goods.FindAll",
		trace.WithAttributes(
			attribute.String("goods.search", search),
			attribute.Int("goods.limit", limit),
		),
	)
	defer span.End()

	goods, total, err := r.GormGoodsRepository.FindAll(ctx, userID, search, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int64("goods.total", total))
	return goods, total, nil
}

func (r *TracingGoodsRepository) Update(ctx context.Context, goods *domain.Goods) error {
	ctx, span := tracer.Start(ctx, "repository.goods.Update",
		trace.WithAttributes(attribute.Int("goods.id", int(goods.ID))),
	)
	defer span.End()

	if err := r.GormGoodsRepository.Update(ctx, goods); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingGoodsRepository) Delete(ctx context.Context, userID, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.goods.Delete",
		trace.WithAttributes(attribute.Int("goods.id", int(id))),
	)
	defer span.End()

	if err := r.GormGoodsRepository.Delete(ctx, userID, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
