package domain

import (
	"errors"
	"time"

	"github.com/medeu/storefront/pkg/schema"
)

func init() {
	schema.Register(&Product{})
}

// ErrProductNotFound is returned when a lookup matches no product.
var ErrProductNotFound = errors.New("product not found")

// Product represents the product entity
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description string    `json:"description" gorm:"column:description"`
	Price       float64   `json:"price" gorm:"column:price;not null"`
	Stock       int       `json:"stock" gorm:"column:stock;not null;default:0"`
	SKU         string    `json:"sku" gorm:"column:sku;unique;not null"`
	BrandID     *uint     `json:"brand_id" gorm:"column:brandId"`
	Brand       *Brand    `json:"brand,omitempty" gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:createdAt;not null;autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updatedAt;not null;autoUpdateTime"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Associate declares the product associations once every model is registered.
func (Product) Associate(r *schema.Registry) error {
	return r.BelongsTo(&Product{}, &Brand{}, "Brand", "brandId")
}

// IsAvailable checks if product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	Update(product *Product) error
	UpdateStock(id uint, stock int) error
	Delete(id uint) error
	Count() (int64, error)
}
