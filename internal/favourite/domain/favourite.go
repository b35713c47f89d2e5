package domain

import (
	"errors"
	"time"

	catalogdomain "github.com/medeu/storefront/internal/catalog/domain"
	userdomain "github.com/medeu/storefront/internal/user/domain"
	"github.com/medeu/storefront/pkg/schema"
)

func init() {
	schema.Register(&Favourite{})
}

// UniqueUserProductConstraint names the composite unique index enforcing "at
// most one favourite per user per product". The rule lives in the database
// rather than application code so concurrent inserts cannot race past it.
const UniqueUserProductConstraint = "unique_user_product_favourite_constraint"

// ErrDuplicateFavourite is returned when the unique (userId, productId)
// constraint rejects an insert.
var ErrDuplicateFavourite = errors.New("favourite already exists for this user and product")

// Favourite links a user to a product they marked as favourite. The primary
// key stays a single surrogate column; uniqueness of the pair is a separate
// named index.
type Favourite struct {
	ID        uint                   `json:"id" gorm:"primaryKey"`
	UserID    uint                   `json:"user_id" gorm:"column:userId;not null;uniqueIndex:unique_user_product_favourite_constraint,priority:1"`
	ProductID uint                   `json:"product_id" gorm:"column:productId;not null;uniqueIndex:unique_user_product_favourite_constraint,priority:2"`
	User      *userdomain.User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Product   *catalogdomain.Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time              `json:"created_at" gorm:"column:createdAt;not null;autoCreateTime"`
	UpdatedAt time.Time              `json:"updated_at" gorm:"column:updatedAt;not null;autoUpdateTime"`
}

// TableName specifies the table name
func (Favourite) TableName() string {
	return "favourites"
}

// Associate declares the favourite associations once every model is registered.
func (Favourite) Associate(r *schema.Registry) error {
	if err := r.BelongsTo(&Favourite{}, &userdomain.User{}, "User", "userId"); err != nil {
		return err
	}
	return r.BelongsTo(&Favourite{}, &catalogdomain.Product{}, "Product", "productId")
}

// FavouriteRepository defines the contract for favourite data access
type FavouriteRepository interface {
	Add(favourite *Favourite) error
	Remove(userID, productID uint) error
	FindByUser(userID uint) ([]Favourite, error)
	IsFavourite(userID, productID uint) (bool, error)
	Count() (int64, error)
}
