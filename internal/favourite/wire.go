//go:build wireinject
// +build wireinject

package favourite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/favourite/delivery/http"
	"github.com/medeu/storefront/internal/favourite/domain"
	"github.com/medeu/storefront/internal/favourite/repository"
	"github.com/medeu/storefront/internal/favourite/usecase/command"
	"github.com/medeu/storefront/pkg/cache"
)

// ProvideFavouriteRepository provides the favourite repository with tracing
func ProvideFavouriteRepository(db *gorm.DB) domain.FavouriteRepository {
	return repository.NewGormFavouriteRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavouriteRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher, c *cache.Cache) (*http.FavouriteHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewFavouriteHandler,
	)
	return nil, nil
}
