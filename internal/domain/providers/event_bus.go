package providers

import (
	"context"

	"github.com/medisense/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to booking events
type EventBus interface {
	// Publish publishes an event to all subscribers of channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe returns a stream of events on channel. The stream is closed
	// when ctx is cancelled or the bus shuts down.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe drops every subscriber of channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelBookings carries every ledger change
	EventChannelBookings = "bookings:events"

	// EventChannelProviderPrefix is the prefix for per-provider booking channels
	EventChannelProviderPrefix = "bookings:provider:"
)

// GetProviderChannel returns the channel for bookings made with one provider
func GetProviderChannel(providerName string) string {
	return EventChannelProviderPrefix + providerName
}
