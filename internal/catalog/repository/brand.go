package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/medeu/storefront/internal/catalog/domain"
)

type GormBrandRepository struct {
	db *gorm.DB
}

func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) Create(brand *domain.Brand) error {
	return r.db.Create(brand).Error
}

func (r *GormBrandRepository) FindByID(id uint) (*domain.Brand, error) {
	var brand domain.Brand
	err := r.db.First(&brand, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) FindByBrandID(brandID string) (*domain.Brand, error) {
	var brand domain.Brand
	err := r.db.Where("\"brandId\" = ?", brandID).First(&brand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) FindAll(limit, offset int) ([]domain.Brand, error) {
	var brands []domain.Brand
	query := r.db.Order("\"brandName\"")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&brands).Error
	return brands, err
}

func (r *GormBrandRepository) Update(brand *domain.Brand) error {
	return r.db.Save(brand).Error
}

func (r *GormBrandRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Brand{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBrandNotFound
	}
	return nil
}

func (r *GormBrandRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Brand{}).Count(&count).Error
	return count, err
}
