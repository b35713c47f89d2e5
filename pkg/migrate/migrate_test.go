package migrate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medeu/storefront/pkg/migrate"
)

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

func createTableMigration(id, table string) *migrate.Migration {
	return &migrate.Migration{
		ID: id,
		Up: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE TABLE "` + table + `" (id INTEGER PRIMARY KEY)`).Error
		},
		Down: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE "` + table + `"`).Error
		},
	}
}

func appliedIDs(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var ids []string
	require.NoError(t, db.Model(&migrate.Record{}).Order("id").Pluck("id", &ids).Error)
	return ids
}

func TestNewRunnerValidation(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name       string
		migrations []*migrate.Migration
		expErr     string
	}{
		{
			name:       "err/empty_id",
			migrations: []*migrate.Migration{createTableMigration("", "a")},
			expErr:     "migration with empty id",
		},
		{
			name: "err/duplicate_id",
			migrations: []*migrate.Migration{
				createTableMigration("001_a", "a"),
				createTableMigration("001_a", "b"),
			},
			expErr: "duplicate migration id",
		},
		{
			name: "err/missing_down",
			migrations: []*migrate.Migration{
				{ID: "001_a", Up: func(tx *gorm.DB) error { return nil }},
			},
			expErr: "up and down are both required",
		},
		{
			name: "ok/valid",
			migrations: []*migrate.Migration{
				createTableMigration("001_a", "a"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := migrate.NewRunner(db, tt.migrations)
			if tt.expErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expErr)
				assert.Nil(t, runner)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, runner)
			}
		})
	}
}

func TestUpAppliesInTimestampOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Registered out of order on purpose.
	runner, err := migrate.NewRunner(db, []*migrate.Migration{
		createTableMigration("20240312104500_create_second", "second"),
		createTableMigration("20240311090000_create_first", "first"),
	})
	require.NoError(t, err)

	applied, err := runner.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	assert.True(t, db.Migrator().HasTable("first"))
	assert.True(t, db.Migrator().HasTable("second"))
	assert.Equal(t, []string{
		"20240311090000_create_first",
		"20240312104500_create_second",
	}, appliedIDs(t, db))

	// Second run is a no-op.
	applied, err = runner.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestUpStopsAtFailedMigration(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	runner, err := migrate.NewRunner(db, []*migrate.Migration{
		createTableMigration("001_first", "first"),
		{
			ID:   "002_broken",
			Up:   func(tx *gorm.DB) error { return boom },
			Down: func(tx *gorm.DB) error { return nil },
		},
		createTableMigration("003_never", "never"),
	})
	require.NoError(t, err)

	applied, err := runner.Up(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "002_broken")
	assert.Equal(t, 1, applied)

	// The failed migration is not recorded and later ones never ran.
	assert.Equal(t, []string{"001_first"}, appliedIDs(t, db))
	assert.False(t, db.Migrator().HasTable("never"))
}

func TestDownRevertsInReverseOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	runner, err := migrate.NewRunner(db, []*migrate.Migration{
		createTableMigration("001_first", "first"),
		createTableMigration("002_second", "second"),
	})
	require.NoError(t, err)

	_, err = runner.Up(ctx)
	require.NoError(t, err)

	reverted, err := runner.Down(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.True(t, db.Migrator().HasTable("first"))
	assert.False(t, db.Migrator().HasTable("second"))
	assert.Equal(t, []string{"001_first"}, appliedIDs(t, db))

	reverted, err = runner.Down(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)
	assert.False(t, db.Migrator().HasTable("first"))
	assert.Empty(t, appliedIDs(t, db))
}

func TestUpDownRoundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	runner, err := migrate.NewRunner(db, []*migrate.Migration{
		createTableMigration("001_first", "first"),
		createTableMigration("002_second", "second"),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		applied, err := runner.Up(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)

		reverted, err := runner.Down(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, reverted)

		assert.False(t, db.Migrator().HasTable("first"))
		assert.False(t, db.Migrator().HasTable("second"))
		assert.Empty(t, appliedIDs(t, db))
	}
}

func TestStatuses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	runner, err := migrate.NewRunner(db, []*migrate.Migration{
		createTableMigration("001_first", "first"),
		createTableMigration("002_second", "second"),
	})
	require.NoError(t, err)

	_, err = runner.Up(ctx)
	require.NoError(t, err)
	_, err = runner.Down(ctx, 1)
	require.NoError(t, err)

	statuses, err := runner.Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, "001_first", statuses[0].ID)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[0].AppliedAt.IsZero())

	assert.Equal(t, "002_second", statuses[1].ID)
	assert.False(t, statuses[1].Applied)
}
