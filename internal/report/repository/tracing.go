package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/warungio/stockpilot/internal/report/domain"
)

var tracer = otel.Tracer("report-repository")

// TracingReportRepository wraps the gorm repository with tracing spans.
type TracingReportRepository struct {
	*GormReportRepository
}

// NewTracingReportRepository creates a traced report repository.
func NewTracingReportRepository(db *GormReportRepository) *TracingReportRepository {
	return &TracingReportRepository{GormReportRepository: db}
}

func (r *TracingReportRepository) LowStock(ctx context.Context, userID uint, limit int) ([]domain.LowStockItem, error) {
	ctx, span := tracer.Start(ctx, "repository.report.LowStock")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)), attribute.Int("limit", limit))

	items, err := r.GormReportRepository.LowStock(ctx, userID, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return items, err
}

func (r *TracingReportRepository) MonthlyRevenue(ctx context.Context, userID uint, year int, month time.Month) (float64, error) {
	ctx, span := tracer.Start(ctx, "repository.report.MonthlyRevenue")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int("year", year),
		attribute.Int("month", int(month)),
	)

	revenue, err := r.GormReportRepository.MonthlyRevenue(ctx, userID, year, month)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return revenue, err
}

func (r *TracingReportRepository) TopSeller(ctx context.Context, userID uint, start, end time.Time) (*domain.TopSellingItem, error) {
	ctx, span := tracer.Start(ctx, "repository.report.TopSeller")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	item, err := r.GormReportRepository.TopSeller(ctx, userID, start, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return item, err
}

func (r *TracingReportRepository) DailySeries(ctx context.Context, userID uint, start, end time.Time) ([]domain.DailySalesPoint, error) {
	ctx, span := tracer.Start(ctx, "repository.report.DailySeries")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	points, err := r.GormReportRepository.DailySeries(ctx, userID, start, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return points, err
}
