package command_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medeu/storefront/internal/catalog/domain"
	"github.com/medeu/storefront/internal/catalog/usecase/command"
)

type fakeBrandRepo struct {
	brands []domain.Brand
}

func (f *fakeBrandRepo) Create(brand *domain.Brand) error {
	brand.ID = uint(len(f.brands) + 1)
	f.brands = append(f.brands, *brand)
	return nil
}

func (f *fakeBrandRepo) FindByID(id uint) (*domain.Brand, error) {
	for i := range f.brands {
		if f.brands[i].ID == id {
			return &f.brands[i], nil
		}
	}
	return nil, domain.ErrBrandNotFound
}

func (f *fakeBrandRepo) FindByBrandID(brandID string) (*domain.Brand, error) {
	for i := range f.brands {
		if f.brands[i].BrandID == brandID {
			return &f.brands[i], nil
		}
	}
	return nil, domain.ErrBrandNotFound
}

func (f *fakeBrandRepo) FindAll(limit, offset int) ([]domain.Brand, error) { return f.brands, nil }
func (f *fakeBrandRepo) Update(brand *domain.Brand) error                  { return nil }
func (f *fakeBrandRepo) Delete(id uint) error                              { return nil }
func (f *fakeBrandRepo) Count() (int64, error)                             { return int64(len(f.brands)), nil }

func TestCreateBrand(t *testing.T) {
	t.Run("ok/explicit_id", func(t *testing.T) {
		handler := command.NewCreateBrandHandler(&fakeBrandRepo{})

		brand, err := handler.Handle(command.CreateBrandCommand{
			BrandID:   "acme",
			BrandName: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, "acme", brand.BrandID)
		assert.Equal(t, "Acme", brand.BrandName)
	})

	t.Run("ok/generated_id", func(t *testing.T) {
		handler := command.NewCreateBrandHandler(&fakeBrandRepo{})

		brand, err := handler.Handle(command.CreateBrandCommand{BrandName: "Acme"})
		require.NoError(t, err)

		// A missing external id gets a generated UUID.
		_, err = uuid.Parse(brand.BrandID)
		assert.NoError(t, err)
	})

	t.Run("err/missing_name", func(t *testing.T) {
		handler := command.NewCreateBrandHandler(&fakeBrandRepo{})

		_, err := handler.Handle(command.CreateBrandCommand{BrandID: "acme"})
		assert.EqualError(t, err, "brand name is required")
	})
}
