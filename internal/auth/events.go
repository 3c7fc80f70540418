package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"authgate/internal/config"
	"authgate/internal/metrics"
	"authgate/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

// EventBus carries session-change notifications between processes over a
// redis pub/sub channel. The session service publishes on sign-in, sign-out
// and token refresh; synchronizers subscribe for the life of their process.
type EventBus struct {
	client  *redis.Client
	channel string
	buffer  int
	logger  *slog.Logger
}

func NewEventBus(cfg *config.Config, logger *slog.Logger) (*EventBus, error) {
	var client *redis.Client

	if cfg.Redis.Sentinel != nil {
		logger.Info("connecting to redis via sentinel",
			"master", cfg.Redis.Sentinel.MasterName,
			"sentinels", cfg.Redis.Sentinel.SentinelAddresses)

		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Redis.Sentinel.MasterName,
			SentinelAddrs:    cfg.Redis.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Redis.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Redis.Sentinel.SentinelPassword,
			Username:         cfg.Redis.Username,
			Password:         cfg.Redis.Password,
			DB:               cfg.Redis.EventsIndex,
			MinIdleConns:     2,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.EventsIndex,
			MinIdleConns: 2,
		})
	}

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	collector := redisprometheus.NewCollector(metrics.Namespace, "events", client)
	if err := prometheus.Register(collector); err != nil {
		logger.Debug("failed to register redis events collector: already registered", "error", err)
	}

	return &EventBus{
		client:  client,
		channel: cfg.Events.Channel,
		buffer:  cfg.Events.Buffer,
		logger:  logger,
	}, nil
}

func (b *EventBus) Publish(ctx context.Context, event models.AuthEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a bounded event channel. Events arrive in publish order;
// when the receiver falls behind the buffer, the newest event is dropped
// and counted rather than blocking the bus. The returned func cancels the
// subscription and closes the channel.
func (b *EventBus) Subscribe(ctx context.Context) (<-chan models.AuthEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	out := make(chan models.AuthEvent, b.buffer)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event models.AuthEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("discarding malformed session event", "error", err)
					continue
				}

				metrics.AuthEventsTotal.WithLabelValues(string(event.Kind)).Inc()

				select {
				case out <- event:
				default:
					metrics.AuthEventsDropped.Inc()
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	return out, cancel, nil
}

func (b *EventBus) Close() error {
	return b.client.Close()
}
