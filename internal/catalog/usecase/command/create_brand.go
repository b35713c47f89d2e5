package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/medeu/storefront/internal/catalog/domain"
)

// CreateBrandCommand represents the command to create a brand
type CreateBrandCommand struct {
	BrandID   string // Optional external id; generated when empty
	BrandName string
}

// CreateBrandHandler handles create brand command
type CreateBrandHandler struct {
	repo domain.BrandRepository
}

// NewCreateBrandHandler creates a new create brand handler
func NewCreateBrandHandler(repo domain.BrandRepository) *CreateBrandHandler {
	return &CreateBrandHandler{repo: repo}
}

// Handle executes the create brand command
func (h *CreateBrandHandler) Handle(cmd CreateBrandCommand) (*domain.Brand, error) {
	if cmd.BrandName == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	brandID := cmd.BrandID
	if brandID == "" {
		brandID = uuid.New().String()
	}

	brand := &domain.Brand{
		BrandID:   brandID,
		BrandName: cmd.BrandName,
	}

	if err := h.repo.Create(brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}
