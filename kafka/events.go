package kafka

import "time"

// FavouriteEvent represents a favourite added/removed event
type FavouriteEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavouriteAdded   = "favourite.added"
	EventTypeFavouriteRemoved = "favourite.removed"
)

// Kafka topics
const (
	TopicFavouriteEvents = "favourite-events"
)
