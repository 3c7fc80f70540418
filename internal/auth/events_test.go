package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"authgate/internal/config"
	"authgate/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *EventBus {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Events: config.EventsConfig{
			Channel: "authgate:session-events",
			Buffer:  8,
		},
		Redis: &config.RedisConfig{
			Address: mr.Addr(),
		},
	}

	bus, err := NewEventBus(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestEventBus_PublishSubscribeRoundtrip(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	sent := models.AuthEvent{
		ID:   "evt-1",
		Kind: models.EventSignedIn,
		User: &models.User{ID: "user-1", Email: "steve@example.com"},
	}
	require.NoError(t, bus.Publish(ctx, sent))

	select {
	case got := <-events:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, models.EventSignedIn, got.Kind)
		require.NotNil(t, got.User)
		assert.Equal(t, "user-1", got.User.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestEventBus_DeliversInPublishOrder(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	ids := []string{"evt-1", "evt-2", "evt-3"}
	for _, id := range ids {
		require.NoError(t, bus.Publish(ctx, models.AuthEvent{ID: id, Kind: models.EventTokenRefreshed}))
	}

	for _, want := range ids {
		select {
		case got := <-events:
			assert.Equal(t, want, got.ID)
		case <-time.After(2 * time.Second):
			t.Fatalf("did not receive event %s", want)
		}
	}
}

func TestEventBus_SignedOutEventCarriesNoUser(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, bus.Publish(ctx, models.AuthEvent{ID: "evt-1", Kind: models.EventSignedOut}))

	select {
	case got := <-events:
		assert.Equal(t, models.EventSignedOut, got.Kind)
		assert.Nil(t, got.User)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestEventBus_CancelClosesChannel(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	// cancel is idempotent
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestEventBus_SubscriberOnlySeesItsChannel(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	events, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, bus.client.Publish(ctx, "unrelated-channel", `{"id":"evt-x"}`).Err())
	require.NoError(t, bus.Publish(ctx, models.AuthEvent{ID: "evt-1", Kind: models.EventSignedIn}))

	select {
	case got := <-events:
		assert.Equal(t, "evt-1", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestNewEventBus_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{
		Events: config.EventsConfig{Channel: "authgate:session-events", Buffer: 8},
		Redis:  &config.RedisConfig{Address: "127.0.0.1:1"},
	}

	bus, err := NewEventBus(cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Nil(t, bus)
}
