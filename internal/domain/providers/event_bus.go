package providers

import (
	"context"

	"github.com/JastejS28/intel3/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to queue
// update events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelQueueUpdates is the channel carrying all queue update events.
const EventChannelQueueUpdates = "queue:updates"
