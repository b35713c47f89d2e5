package migrations_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/medeu/storefront/internal/catalog/domain"
	favouritedomain "github.com/medeu/storefront/internal/favourite/domain"
	userdomain "github.com/medeu/storefront/internal/user/domain"
	"github.com/medeu/storefront/migrations"
	"github.com/medeu/storefront/pkg/migrate"
)

var allTables = []string{"roles", "users", "brands", "products", "favourites"}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	return db
}

func migrateUp(t *testing.T, db *gorm.DB) *migrate.Runner {
	t.Helper()
	runner, err := migrate.NewRunner(db, migrations.All())
	require.NoError(t, err)
	_, err = runner.Up(context.Background())
	require.NoError(t, err)
	return runner
}

func seedUser(t *testing.T, db *gorm.DB, username string) *userdomain.User {
	t.Helper()
	u := &userdomain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		FullName: "Test User",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, sku string) *catalogdomain.Product {
	t.Helper()
	p := &catalogdomain.Product{
		Name:  "Product " + sku,
		Price: 9.99,
		Stock: 3,
		SKU:   sku,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCatalogIsSortedByTimestamp(t *testing.T) {
	all := migrations.All()
	require.Len(t, all, 5)

	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	assert.True(t, sort.StringsAreSorted(ids), "migration ids out of order: %v", ids)
	assert.Equal(t, "20240311090000_create_roles", ids[0])
	assert.Equal(t, "20240314143000_create_favourites", ids[len(ids)-1])
}

func TestUpCreatesAllTables(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	for _, table := range allTables {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	// The named pair index on favourites comes from raw SQL in the
	// migration, not from model tags.
	var indexCount int64
	require.NoError(t, db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`,
		favouritedomain.UniqueUserProductConstraint,
	).Scan(&indexCount).Error)
	assert.Equal(t, int64(1), indexCount)
}

func TestUpDownRoundtripLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	runner := migrateUp(t, db)

	reverted, err := runner.Down(ctx, len(migrations.All()))
	require.NoError(t, err)
	assert.Equal(t, 5, reverted)

	for _, table := range allTables {
		assert.False(t, db.Migrator().HasTable(table), "table %s survived rollback", table)
	}

	var recordCount int64
	require.NoError(t, db.Model(&migrate.Record{}).Count(&recordCount).Error)
	assert.Zero(t, recordCount)

	// The catalog applies cleanly again after a full rollback.
	applied, err := runner.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, applied)
}

func TestDuplicateFavouriteRejected(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "SKU-1")
	other := seedProduct(t, db, "SKU-2")

	require.NoError(t, db.Create(&favouritedomain.Favourite{
		UserID:    user.ID,
		ProductID: product.ID,
	}).Error)

	err := db.Create(&favouritedomain.Favourite{
		UserID:    user.ID,
		ProductID: product.ID,
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same user, different product is fine.
	require.NoError(t, db.Create(&favouritedomain.Favourite{
		UserID:    user.ID,
		ProductID: other.ID,
	}).Error)

	// Another user may favourite the same product.
	bob := seedUser(t, db, "bob")
	require.NoError(t, db.Create(&favouritedomain.Favourite{
		UserID:    bob.ID,
		ProductID: product.ID,
	}).Error)
}

func TestDeletingUserCascadesToFavourites(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	user := seedUser(t, db, "alice")
	survivor := seedUser(t, db, "bob")
	product := seedProduct(t, db, "SKU-1")

	require.NoError(t, db.Create(&favouritedomain.Favourite{UserID: user.ID, ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&favouritedomain.Favourite{UserID: survivor.ID, ProductID: product.ID}).Error)

	require.NoError(t, db.Delete(&userdomain.User{}, user.ID).Error)

	var remaining []favouritedomain.Favourite
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].UserID)
}

func TestDeletingProductCascadesToFavourites(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "SKU-1")
	survivor := seedProduct(t, db, "SKU-2")

	require.NoError(t, db.Create(&favouritedomain.Favourite{UserID: user.ID, ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&favouritedomain.Favourite{UserID: user.ID, ProductID: survivor.ID}).Error)

	require.NoError(t, db.Delete(&catalogdomain.Product{}, product.ID).Error)

	var remaining []favouritedomain.Favourite
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ProductID)
}

func TestFavouriteRequiresExistingRows(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	err := db.Create(&favouritedomain.Favourite{UserID: 41, ProductID: 42}).Error
	require.Error(t, err, "foreign keys must reject dangling references")
}

func TestBrandConstraints(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	require.NoError(t, db.Create(&catalogdomain.Brand{BrandID: "acme", BrandName: "Acme"}).Error)

	t.Run("duplicate brandId", func(t *testing.T) {
		err := db.Create(&catalogdomain.Brand{BrandID: "acme", BrandName: "Acme Again"}).Error
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("null brandId", func(t *testing.T) {
		err := db.Exec(
			`INSERT INTO "brands" ("brandId","brandName","createdAt","updatedAt") VALUES (NULL,'No ID',CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`,
		).Error
		require.Error(t, err)
	})
}

func TestRoleConstraints(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	require.NoError(t, db.Create(&userdomain.Role{RoleID: "admin", RoleName: "Administrator"}).Error)

	t.Run("duplicate roleId", func(t *testing.T) {
		err := db.Create(&userdomain.Role{RoleID: "admin", RoleName: "Other"}).Error
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("null roleId", func(t *testing.T) {
		err := db.Exec(
			`INSERT INTO "roles" ("roleId","roleName","createdAt","updatedAt") VALUES (NULL,'No ID',CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`,
		).Error
		require.Error(t, err)
	})
}

func TestDeletingRoleNullsUserRole(t *testing.T) {
	db := newTestDB(t)
	migrateUp(t, db)

	role := &userdomain.Role{RoleID: "admin", RoleName: "Administrator"}
	require.NoError(t, db.Create(role).Error)

	user := seedUser(t, db, "alice")
	require.NoError(t, db.Model(user).Update("roleId", role.ID).Error)

	require.NoError(t, db.Delete(&userdomain.Role{}, role.ID).Error)

	var reloaded userdomain.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Nil(t, reloaded.RoleID)
}
