package command

import (
	"fmt"

	"github.com/medeu/storefront/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	SKU         string
	BrandID     *uint
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than 0")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		SKU:         cmd.SKU,
		BrandID:     cmd.BrandID,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
