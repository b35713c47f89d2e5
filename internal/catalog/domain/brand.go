package domain

import (
	"errors"
	"time"

	"github.com/medeu/storefront/pkg/schema"
)

func init() {
	schema.Register(&Brand{})
}

// ErrBrandNotFound is returned when a lookup matches no brand.
var ErrBrandNotFound = errors.New("brand not found")

// Brand represents a product brand. BrandID is the external identifier used
// by upstream catalog feeds; it is unique across the table.
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BrandID   string    `json:"brand_id" gorm:"column:brandId;unique;not null"`
	BrandName string    `json:"brand_name" gorm:"column:brandName;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:createdAt;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updatedAt;not null;autoUpdateTime"`
}

// TableName specifies the table name
func (Brand) TableName() string {
	return "brands"
}

// BrandRepository defines the contract for brand data access
type BrandRepository interface {
	Create(brand *Brand) error
	FindByID(id uint) (*Brand, error)
	FindByBrandID(brandID string) (*Brand, error)
	FindAll(limit, offset int) ([]Brand, error)
	Update(brand *Brand) error
	Delete(id uint) error
	Count() (int64, error)
}
