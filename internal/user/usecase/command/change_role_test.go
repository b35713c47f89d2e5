package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medeu/storefront/internal/user/domain"
	"github.com/medeu/storefront/internal/user/repository"
	"github.com/medeu/storefront/internal/user/usecase/command"
	"github.com/medeu/storefront/migrations"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	runner, err := migrate.NewRunner(db, migrations.All())
	require.NoError(t, err)
	_, err = runner.Up(context.Background())
	require.NoError(t, err)

	return db
}

func TestChangeRole(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewGormUserRepository(db)
	roles := repository.NewGormRoleRepository(db)
	handler := command.NewChangeRoleHandler(users, roles)

	admin := &domain.Role{RoleID: domain.RoleIDAdmin, RoleName: "Administrator"}
	require.NoError(t, roles.Create(admin))

	alice := &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
		FullName: "Alice",
	}
	require.NoError(t, users.Create(alice))

	t.Run("ok", func(t *testing.T) {
		updated, err := handler.Handle(command.ChangeRoleCommand{
			UserID: alice.ID,
			RoleID: domain.RoleIDAdmin,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.RoleID)
		assert.Equal(t, admin.ID, *updated.RoleID)
		require.NotNil(t, updated.Role)
		assert.Equal(t, domain.RoleIDAdmin, updated.Role.RoleID)

		// The role sticks and shows up in the role's member list.
		members, err := roles.Users(admin.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, alice.ID, members[0].ID)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := handler.Handle(command.ChangeRoleCommand{UserID: alice.ID, RoleID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := handler.Handle(command.ChangeRoleCommand{UserID: 999, RoleID: domain.RoleIDAdmin})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := handler.Handle(command.ChangeRoleCommand{RoleID: domain.RoleIDAdmin})
		assert.EqualError(t, err, "invalid user id")

		_, err = handler.Handle(command.ChangeRoleCommand{UserID: alice.ID})
		assert.EqualError(t, err, "role id is required")
	})
}
