package domain

import (
	"errors"
	"time"

	"github.com/medeu/storefront/pkg/schema"
)

func init() {
	schema.Register(&User{})
}

// ErrUserNotFound is returned when a lookup matches no user.
var ErrUserNotFound = errors.New("user not found")

// Well-known external role identifiers.
const (
	RoleIDAdmin    = "admin"
	RoleIDCustomer = "customer"
)

// User represents the user entity (domain model)
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"column:username;unique;not null"`
	Email     string    `json:"email" gorm:"column:email;unique;not null"`
	Password  string    `json:"-" gorm:"column:password;not null"` // Never expose password in JSON
	FullName  string    `json:"full_name" gorm:"column:fullName;not null"`
	RoleID    *uint     `json:"role_id" gorm:"column:roleId"`
	Role      *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at" gorm:"column:createdAt;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updatedAt;not null;autoUpdateTime"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Associate declares the user associations once every model is registered.
func (User) Associate(r *schema.Registry) error {
	return r.BelongsTo(&User{}, &Role{}, "Role", "roleId")
}

// HasRole reports whether the user is assigned the given external role id.
func (u *User) HasRole(roleID string) bool {
	return u.Role != nil && u.Role.RoleID == roleID
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
}
