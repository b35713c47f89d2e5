package command

import (
	"context"
	"fmt"

	"github.com/medeu/storefront/internal/favourite/domain"
	"github.com/medeu/storefront/pkg/logger"
)

// EventPublisher publishes favourite lifecycle events. A nil publisher
// disables publishing.
type EventPublisher interface {
	PublishFavouriteAdded(ctx context.Context, userID, productID uint) error
	PublishFavouriteRemoved(ctx context.Context, userID, productID uint) error
}

// AddFavouriteCommand represents the command to favourite a product
type AddFavouriteCommand struct {
	UserID    uint
	ProductID uint
}

// AddFavouriteHandler handles add favourite command
type AddFavouriteHandler struct {
	repo   domain.FavouriteRepository
	events EventPublisher
}

// NewAddFavouriteHandler creates a new add favourite handler
func NewAddFavouriteHandler(repo domain.FavouriteRepository, events EventPublisher) *AddFavouriteHandler {
	return &AddFavouriteHandler{repo: repo, events: events}
}

// Handle executes the add favourite command. Duplicate pairs are rejected by
// the database constraint, not checked here first; checking first would race
// under concurrent inserts.
func (h *AddFavouriteHandler) Handle(ctx context.Context, cmd AddFavouriteCommand) (*domain.Favourite, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	favourite := &domain.Favourite{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
	}

	if err := h.repo.Add(favourite); err != nil {
		return nil, err
	}

	if h.events != nil {
		if err := h.events.PublishFavouriteAdded(ctx, cmd.UserID, cmd.ProductID); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", cmd.UserID).
				Uint("product_id", cmd.ProductID).
				Msg("Failed to publish favourite added event")
		}
	}

	return favourite, nil
}
