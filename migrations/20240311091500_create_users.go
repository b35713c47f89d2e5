package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/migrate"
)

type user struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"column:username;unique;not null"`
	Email     string    `gorm:"column:email;unique;not null"`
	Password  string    `gorm:"column:password;not null"`
	FullName  string    `gorm:"column:fullName;not null"`
	RoleID    *uint     `gorm:"column:roleId"`
	Role      *role     `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (user) TableName() string { return "users" }

func init() {
	register(&migrate.Migration{
		ID: "20240311091500_create_users",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&user{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&user{})
		},
	})
}
