package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/user/domain"
)

// GormRoleRepository implements RoleRepository interface using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GORM role repository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Create inserts a new role into the database
func (r *GormRoleRepository) Create(role *domain.Role) error {
	if err := r.db.Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// FindByID retrieves a role by its surrogate ID
func (r *GormRoleRepository) FindByID(id uint) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

// FindByRoleID retrieves a role by its external identifier
func (r *GormRoleRepository) FindByRoleID(roleID string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.Where("\"roleId\" = ?", roleID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

// FindAll retrieves all roles
func (r *GormRoleRepository) FindAll() ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.Order("\"roleId\"").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	return roles, nil
}

// Users returns the users assigned to a role via the declared association.
func (r *GormRoleRepository) Users(id uint) ([]domain.User, error) {
	role, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	if err := r.db.Model(role).Association("Users").Find(&users); err != nil {
		return nil, fmt.Errorf("failed to find users of role: %w", err)
	}
	return users, nil
}

// Delete removes a role from the database
func (r *GormRoleRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Role{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
