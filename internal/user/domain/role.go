package domain

import (
	"errors"
	"time"

	"github.com/medeu/storefront/pkg/schema"
)

func init() {
	schema.Register(&Role{})
}

// ErrRoleNotFound is returned when a lookup matches no role.
var ErrRoleNotFound = errors.New("role not found")

// Role represents a user role. RoleID is the external identifier ("admin",
// "customer"); ID stays the surrogate join key.
type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RoleID    string    `json:"role_id" gorm:"column:roleId;unique;not null"`
	RoleName  string    `json:"role_name" gorm:"column:roleName;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:createdAt;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updatedAt;not null;autoUpdateTime"`
	Users     []User    `json:"users,omitempty" gorm:"foreignKey:RoleID"`
}

// TableName specifies the table name
func (Role) TableName() string {
	return "roles"
}

// Associate declares the role associations once every model is registered.
func (Role) Associate(r *schema.Registry) error {
	return r.HasMany(&Role{}, &User{}, "Users", "roleId")
}

// RoleRepository defines the contract for role data access
type RoleRepository interface {
	Create(role *Role) error
	FindByID(id uint) (*Role, error)
	FindByRoleID(roleID string) (*Role, error)
	FindAll() ([]Role, error)
	Users(id uint) ([]User, error)
	Delete(id uint) error
}
