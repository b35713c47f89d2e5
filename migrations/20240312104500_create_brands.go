package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/migrate"
)

type brand struct {
	ID        uint      `gorm:"primaryKey"`
	BrandID   string    `gorm:"column:brandId;unique;not null"`
	BrandName string    `gorm:"column:brandName;not null"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (brand) TableName() string { return "brands" }

func init() {
	register(&migrate.Migration{
		ID: "20240312104500_create_brands",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&brand{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&brand{})
		},
	})
}
