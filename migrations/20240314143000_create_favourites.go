package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/medeu/storefront/pkg/migrate"
)

type favourite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"column:userId;not null"`
	ProductID uint      `gorm:"column:productId;not null"`
	User      *user     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Product   *product  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:createdAt;not null"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null"`
}

func (favourite) TableName() string { return "favourites" }

func init() {
	register(&migrate.Migration{
		ID: "20240314143000_create_favourites",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().CreateTable(&favourite{}); err != nil {
				return err
			}
			// The pair is unique but the primary key stays a single surrogate
			// column; the constraint is a separate named index.
			return tx.Exec(
				`CREATE UNIQUE INDEX "unique_user_product_favourite_constraint" ON "favourites" ("userId","productId")`,
			).Error
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&favourite{})
		},
	})
}
