package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/favourite/domain"
)

var tracer = otel.Tracer("favourite-repository")

// GormFavouriteRepositoryWithTracing wraps GormFavouriteRepository with tracing
type GormFavouriteRepositoryWithTracing struct {
	*GormFavouriteRepository
}

// NewGormFavouriteRepositoryWithTracing creates a new repository with tracing
func NewGormFavouriteRepositoryWithTracing(db *gorm.DB) *GormFavouriteRepositoryWithTracing {
	return &GormFavouriteRepositoryWithTracing{
		GormFavouriteRepository: NewGormFavouriteRepository(db),
	}
}

// Add with tracing
func (r *GormFavouriteRepositoryWithTracing) AddWithContext(ctx context.Context, favourite *domain.Favourite) error {
	_, span := tracer.Start(ctx, "repository.Add",
		trace.WithAttributes(
			attribute.Int("user.id", int(favourite.UserID)),
			attribute.Int("product.id", int(favourite.ProductID)),
		),
	)
	defer span.End()

	err := r.GormFavouriteRepository.Add(favourite)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("favourite.id", int(favourite.ID)))
	return nil
}

// Remove with tracing
func (r *GormFavouriteRepositoryWithTracing) RemoveWithContext(ctx context.Context, userID, productID uint) error {
	_, span := tracer.Start(ctx, "repository.Remove",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	err := r.GormFavouriteRepository.Remove(userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindByUser with tracing
func (r *GormFavouriteRepositoryWithTracing) FindByUserWithContext(ctx context.Context, userID uint) ([]domain.Favourite, error) {
	_, span := tracer.Start(ctx, "repository.FindByUser",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
		),
	)
	defer span.End()

	favourites, err := r.GormFavouriteRepository.FindByUser(userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("favourite.count", len(favourites)))
	return favourites, nil
}

// IsFavourite with tracing
func (r *GormFavouriteRepositoryWithTracing) IsFavouriteWithContext(ctx context.Context, userID, productID uint) (bool, error) {
	_, span := tracer.Start(ctx, "repository.IsFavourite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	ok, err := r.GormFavouriteRepository.IsFavourite(userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("favourite.exists", ok))
	return ok, nil
}
