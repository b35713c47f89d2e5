package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/favourite/domain"
)

// GormFavouriteRepository implements FavouriteRepository interface using GORM
type GormFavouriteRepository struct {
	db *gorm.DB
}

// NewGormFavouriteRepository creates a new GORM favourite repository
func NewGormFavouriteRepository(db *gorm.DB) *GormFavouriteRepository {
	return &GormFavouriteRepository{db: db}
}

// Add inserts a favourite. The database's unique (userId, productId) index is
// the duplicate check; a violation comes back as ErrDuplicateFavourite.
func (r *GormFavouriteRepository) Add(favourite *domain.Favourite) error {
	if err := r.db.Create(favourite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateFavourite
		}
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// Remove deletes the favourite for a (user, product) pair.
func (r *GormFavouriteRepository) Remove(userID, productID uint) error {
	result := r.db.
		Where("\"userId\" = ? AND \"productId\" = ?", userID, productID).
		Delete(&domain.Favourite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favourite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByUser returns a user's favourites with products preloaded.
func (r *GormFavouriteRepository) FindByUser(userID uint) ([]domain.Favourite, error) {
	var favourites []domain.Favourite
	err := r.db.
		Preload("Product").
		Where("\"userId\" = ?", userID).
		Order("\"createdAt\" DESC").
		Find(&favourites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favourites: %w", err)
	}
	return favourites, nil
}

// IsFavourite reports whether the pair exists.
func (r *GormFavouriteRepository) IsFavourite(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favourite{}).
		Where("\"userId\" = ? AND \"productId\" = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favourite: %w", err)
	}
	return count > 0, nil
}

// Count returns the total number of favourites
func (r *GormFavouriteRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Favourite{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favourites: %w", err)
	}
	return count, nil
}
