package command

import (
	"context"
	"fmt"

	"github.com/medeu/storefront/internal/favourite/domain"
	"github.com/medeu/storefront/pkg/logger"
)

// RemoveFavouriteCommand represents the command to unfavourite a product
type RemoveFavouriteCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveFavouriteHandler handles remove favourite command
type RemoveFavouriteHandler struct {
	repo   domain.FavouriteRepository
	events EventPublisher
}

// NewRemoveFavouriteHandler creates a new remove favourite handler
func NewRemoveFavouriteHandler(repo domain.FavouriteRepository, events EventPublisher) *RemoveFavouriteHandler {
	return &RemoveFavouriteHandler{repo: repo, events: events}
}

// Handle executes the remove favourite command
func (h *RemoveFavouriteHandler) Handle(ctx context.Context, cmd RemoveFavouriteCommand) error {
	if cmd.UserID == 0 {
		return fmt.Errorf("user_id is required")
	}
	if cmd.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}

	if err := h.repo.Remove(cmd.UserID, cmd.ProductID); err != nil {
		return err
	}

	if h.events != nil {
		if err := h.events.PublishFavouriteRemoved(ctx, cmd.UserID, cmd.ProductID); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", cmd.UserID).
				Uint("product_id", cmd.ProductID).
				Msg("Failed to publish favourite removed event")
		}
	}

	return nil
}
