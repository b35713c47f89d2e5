package query

import (
	"fmt"

	"github.com/medeu/storefront/internal/favourite/domain"
)

// ListFavouritesQuery represents the query to list a user's favourites
type ListFavouritesQuery struct {
	UserID uint
}

// ListFavouritesHandler handles list favourites query
type ListFavouritesHandler struct {
	repo domain.FavouriteRepository
}

// NewListFavouritesHandler creates a new list favourites handler
func NewListFavouritesHandler(repo domain.FavouriteRepository) *ListFavouritesHandler {
	return &ListFavouritesHandler{repo: repo}
}

// Handle executes the list favourites query
func (h *ListFavouritesHandler) Handle(query ListFavouritesQuery) ([]domain.Favourite, error) {
	if query.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	return h.repo.FindByUser(query.UserID)
}
