package query

import (
	"fmt"

	"github.com/medeu/storefront/internal/catalog/domain"
)

// GetBrandQuery represents the query to get a brand by ID
type GetBrandQuery struct {
	BrandID uint
}

// GetBrandHandler handles get brand query
type GetBrandHandler struct {
	repo domain.BrandRepository
}

// NewGetBrandHandler creates a new get brand handler
func NewGetBrandHandler(repo domain.BrandRepository) *GetBrandHandler {
	return &GetBrandHandler{repo: repo}
}

// Handle executes the get brand query
func (h *GetBrandHandler) Handle(query GetBrandQuery) (*domain.Brand, error) {
	if query.BrandID == 0 {
		return nil, fmt.Errorf("invalid brand id")
	}
	return h.repo.FindByID(query.BrandID)
}
