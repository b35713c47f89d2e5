package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/migrate"
)

type product struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price;not null"`
	Stock       int       `gorm:"column:stock;not null;default:0"`
	SKU         string    `gorm:"column:sku;unique;not null"`
	BrandID     *uint     `gorm:"column:brandId"`
	Brand       *brand    `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt   time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt   time.Time `gorm:"column:updatedAt;not null"`
}

func (product) TableName() string { return "products" }

func init() {
	register(&migrate.Migration{
		ID: "20240312110000_create_products",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().CreateTable(&product{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&product{})
		},
	})
}
