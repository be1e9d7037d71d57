package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/warungio/stockpilot/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository wraps the gorm repository with tracing spans.
type TracingUserRepository struct {
	*GormUserRepository
}

// NewTracingUserRepository creates a traced user repository.
func NewTracingUserRepository(db *GormUserRepository) *TracingUserRepository {
	return &TracingUserRepository{GormUserRepository: db}
}

func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.user.Create")
	defer span.End()
	span.SetAttributes(attribute.String("user.username", user.Username))

	err := r.GormUserRepository.Create(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.user.FindByID")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(id)))

	user, err := r.GormUserRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return user, err
}

func (r *TracingUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.user.FindByUsername")
	defer span.End()
	span.SetAttributes(attribute.String("user.username", username))

	user, err := r.GormUserRepository.FindByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return user, err
}

func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.user.FindByEmail")
	defer span.End()

	user, err := r.GormUserRepository.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return user, err
}

func (r *TracingUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.user.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))

	err := r.GormUserRepository.Update(ctx, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
