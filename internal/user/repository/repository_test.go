package repository_test

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

func newUser(username string) *domain.User {
	return &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		FullName: "Test User",
	}
}

func TestUserCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewGormUserRepository(db)

	user := newUser("alice")
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	found, err = repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found.FullName = "Alice Liddell"
	require.NoError(t, repo.Update(found))

	reloaded, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", reloaded.FullName)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(user.ID))
	_, err = repo.FindByID(user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewGormUserRepository(db)

	_, err := repo.FindByID(999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByUsername("nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(999), domain.ErrUserNotFound)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewGormUserRepository(db)

	require.NoError(t, repo.Create(newUser("alice")))

	dup := newUser("alice")
	dup.Email = "other@example.com"
	err := repo.Create(dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRoleUsersAccessor(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewGormUserRepository(db)
	roles := repository.NewGormRoleRepository(db)

	admin := &domain.Role{RoleID: domain.RoleIDAdmin, RoleName: "Administrator"}
	require.NoError(t, roles.Create(admin))
	customer := &domain.Role{RoleID: domain.RoleIDCustomer, RoleName: "Customer"}
	require.NoError(t, roles.Create(customer))

	alice := newUser("alice")
	alice.RoleID = &admin.ID
	require.NoError(t, users.Create(alice))

	bob := newUser("bob")
	bob.RoleID = &customer.ID
	require.NoError(t, users.Create(bob))

	members, err := roles.Users(admin.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0].Username)

	// A role with no members yields an empty slice, not an error.
	empty := &domain.Role{RoleID: "support", RoleName: "Support"}
	require.NoError(t, roles.Create(empty))
	members, err = roles.Users(empty.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestFindByRoleID(t *testing.T) {
	db := newTestDB(t)
	roles := repository.NewGormRoleRepository(db)

	require.NoError(t, roles.Create(&domain.Role{RoleID: "admin", RoleName: "Administrator"}))

	role, err := roles.FindByRoleID("admin")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", role.RoleName)

	_, err = roles.FindByRoleID("ghost")
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestFindByIDPreloadsRole(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewGormUserRepository(db)
	roles := repository.NewGormRoleRepository(db)

	admin := &domain.Role{RoleID: domain.RoleIDAdmin, RoleName: "Administrator"}
	require.NoError(t, roles.Create(admin))

	alice := newUser("alice")
	alice.RoleID = &admin.ID
	require.NoError(t, users.Create(alice))

	found, err := users.FindByID(alice.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Role)
	assert.Equal(t, domain.RoleIDAdmin, found.Role.RoleID)
	assert.True(t, found.HasRole(domain.RoleIDAdmin))
	assert.False(t, found.HasRole(domain.RoleIDCustomer))
}
