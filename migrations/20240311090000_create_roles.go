package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/migrate"
)

type role struct {
	ID        uint      `gorm:"primaryKey"`
	RoleID    string    `gorm:"column:roleId;unique;not null"`
	RoleName  string    `gorm:"column:roleName;not null"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (role) TableName() string { return "roles" }

func init() {
	register(&migrate.Migration{
		ID: "20240311090000_create_roles",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&role{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&role{})
		},
	})
}
