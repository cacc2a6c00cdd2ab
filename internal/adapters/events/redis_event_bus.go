package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	redisclient "github.com/medisense/backend/internal/infrastructure/clients/redis"
)

// subscriberBuffer bounds each subscriber; slow readers drop events
const subscriberBuffer = 100

var errBusClosed = errors.New("event bus is closed")

// fanout is one Redis subscription shared by every local subscriber of a channel
type fanout struct {
	pubsub *redis.PubSub
	subs   map[chan *entities.BookingEvent]struct{}
}

// RedisEventBus publishes booking events over Redis Pub/Sub so every API
// replica sees every ledger change. Each channel holds a single Redis
// subscription that is fanned out to local subscribers.
type RedisEventBus struct {
	rdb     *redis.Client
	mu      sync.Mutex
	fanouts map[string]*fanout
	closed  bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		rdb:     client.Client(),
		fanouts: make(map[string]*fanout),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Publish sends event to channel on Redis
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	if err := b.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	log.Debug().Str("channel", channel).Str("event_id", event.ID).Str("type", string(event.Type)).Msg("Published booking event")
	return nil
}

// Subscribe returns a stream of channel events that closes with ctx
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, errBusClosed
	}

	f, ok := b.fanouts[channel]
	if !ok {
		f = &fanout{
			pubsub: b.rdb.Subscribe(b.ctx, channel),
			subs:   make(map[chan *entities.BookingEvent]struct{}),
		}
		b.fanouts[channel] = f
		go b.pump(channel, f)
	}
	sub := make(chan *entities.BookingEvent, subscriberBuffer)
	f.subs[sub] = struct{}{}
	count := len(f.subs)
	b.mu.Unlock()

	log.Debug().Str("channel", channel).Int("subscribers", count).Msg("Subscribed to booking events")

	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		}
		b.drop(channel, sub)
	}()
	return sub, nil
}

// pump decodes Redis messages for channel and hands them to its subscribers
func (b *RedisEventBus) pump(channel string, f *fanout) {
	for msg := range f.pubsub.Channel() {
		var event entities.BookingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("Discarding malformed booking event")
			continue
		}

		b.mu.Lock()
		for sub := range f.subs {
			select {
			case sub <- &event:
			default:
				log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("Subscriber is full, dropping event")
			}
		}
		b.mu.Unlock()
	}
}

// drop removes one subscriber and releases the Redis subscription with the last one
func (b *RedisEventBus) drop(channel string, sub chan *entities.BookingEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.fanouts[channel]
	if !ok {
		return
	}
	if _, ok := f.subs[sub]; !ok {
		return
	}
	delete(f.subs, sub)
	close(sub)

	if len(f.subs) == 0 {
		delete(b.fanouts, channel)
		if err := f.pubsub.Close(); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("Failed to close subscription")
		}
	}
}

// release closes every subscriber of f and its Redis subscription. Callers hold b.mu.
func (b *RedisEventBus) release(channel string, f *fanout) error {
	for sub := range f.subs {
		close(sub)
	}
	f.subs = nil
	delete(b.fanouts, channel)
	if err := f.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription %s: %w", channel, err)
	}
	return nil
}

// Unsubscribe drops every local subscriber of channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.fanouts[channel]
	if !ok {
		return nil
	}
	return b.release(channel, f)
}

// Close ends every subscription; later Subscribe calls fail
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.cancel()

	var errs []error
	for channel, f := range b.fanouts {
		if err := b.release(channel, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
