package query

import (
	"fmt"

	"github.com/medeu/storefront/internal/catalog/domain"
)

// ListBrandsQuery represents the query to list brands with pagination
type ListBrandsQuery struct {
	Limit  int
	Offset int
}

// ListBrandsHandler handles list brands query
type ListBrandsHandler struct {
	repo domain.BrandRepository
}

// NewListBrandsHandler creates a new list brands handler
func NewListBrandsHandler(repo domain.BrandRepository) *ListBrandsHandler {
	return &ListBrandsHandler{repo: repo}
}

// Handle executes the list brands query
func (h *ListBrandsHandler) Handle(query ListBrandsQuery) ([]domain.Brand, error) {
	brands, err := h.repo.FindAll(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}
