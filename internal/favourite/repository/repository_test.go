package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/medeu/storefront/internal/catalog/domain"
	"github.com/medeu/storefront/internal/favourite/domain"
	"github.com/medeu/storefront/internal/favourite/repository"
	userdomain "github.com/medeu/storefront/internal/user/domain"
	"github.com/medeu/storefront/migrations"
	"github.com/medeu/storefront/pkg/migrate"
)

type fixture struct {
	db      *gorm.DB
	repo    *repository.GormFavouriteRepository
	user    *userdomain.User
	product *catalogdomain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	runner, err := migrate.NewRunner(db, migrations.All())
	require.NoError(t, err)
	_, err = runner.Up(context.Background())
	require.NoError(t, err)

	user := &userdomain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
		FullName: "Alice",
	}
	require.NoError(t, db.Create(user).Error)

	product := &catalogdomain.Product{
		Name:  "Widget",
		Price: 4.99,
		Stock: 10,
		SKU:   "SKU-1",
	}
	require.NoError(t, db.Create(product).Error)

	return &fixture{
		db:      db,
		repo:    repository.NewGormFavouriteRepository(db),
		user:    user,
		product: product,
	}
}

func TestAddAndDuplicate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.repo.Add(&domain.Favourite{
		UserID:    f.user.ID,
		ProductID: f.product.ID,
	}))

	err := f.repo.Add(&domain.Favourite{
		UserID:    f.user.ID,
		ProductID: f.product.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavourite)

	count, err := f.repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.repo.Add(&domain.Favourite{
		UserID:    f.user.ID,
		ProductID: f.product.ID,
	}))
	require.NoError(t, f.repo.Remove(f.user.ID, f.product.ID))

	// Removing again reports the missing pair.
	err := f.repo.Remove(f.user.ID, f.product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The pair can be re-added once removed.
	require.NoError(t, f.repo.Add(&domain.Favourite{
		UserID:    f.user.ID,
		ProductID: f.product.ID,
	}))
}

func TestFindByUserPreloadsProducts(t *testing.T) {
	f := newFixture(t)

	other := &catalogdomain.Product{Name: "Gadget", Price: 7.50, Stock: 2, SKU: "SKU-2"}
	require.NoError(t, f.db.Create(other).Error)

	require.NoError(t, f.repo.Add(&domain.Favourite{UserID: f.user.ID, ProductID: f.product.ID}))
	require.NoError(t, f.repo.Add(&domain.Favourite{UserID: f.user.ID, ProductID: other.ID}))

	favourites, err := f.repo.FindByUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, favourites, 2)
	for _, fav := range favourites {
		require.NotNil(t, fav.Product)
		assert.Equal(t, fav.ProductID, fav.Product.ID)
	}

	favourites, err = f.repo.FindByUser(999)
	require.NoError(t, err)
	assert.Empty(t, favourites)
}

func TestIsFavourite(t *testing.T) {
	f := newFixture(t)

	ok, err := f.repo.IsFavourite(f.user.ID, f.product.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.repo.Add(&domain.Favourite{UserID: f.user.ID, ProductID: f.product.ID}))

	ok, err = f.repo.IsFavourite(f.user.ID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
