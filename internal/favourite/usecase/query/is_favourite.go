package query

import (
	"fmt"

	"github.com/medeu/storefront/internal/favourite/domain"
)

// IsFavouriteQuery checks whether a user favourited a product
type IsFavouriteQuery struct {
	UserID    uint
	ProductID uint
}

// IsFavouriteHandler handles is favourite query
type IsFavouriteHandler struct {
	repo domain.FavouriteRepository
}

// NewIsFavouriteHandler creates a new is favourite handler
func NewIsFavouriteHandler(repo domain.FavouriteRepository) *IsFavouriteHandler {
	return &IsFavouriteHandler{repo: repo}
}

// Handle executes the is favourite query
func (h *IsFavouriteHandler) Handle(query IsFavouriteQuery) (bool, error) {
	if query.UserID == 0 || query.ProductID == 0 {
		return false, fmt.Errorf("user id and product id are required")
	}
	return h.repo.IsFavourite(query.UserID, query.ProductID)
}
