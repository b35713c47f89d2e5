package command

import (
	"fmt"

	"github.com/medeu/storefront/internal/catalog/domain"
)

// UpdateStockCommand represents the command to update product stock
type UpdateStockCommand struct {
	ProductID uint
	Stock     int
}

// UpdateStockHandler handles update stock command
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	if _, err := h.repo.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	if err := h.repo.UpdateStock(cmd.ProductID, cmd.Stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return h.repo.FindByID(cmd.ProductID)
}
