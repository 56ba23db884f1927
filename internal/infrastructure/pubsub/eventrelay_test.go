package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func newClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisEventRelay_DeliversOtherInstancesOnly(t *testing.T) {
	client := newClient(t)
	local := NewRedisEventRelay(client, "deskhub:events", logger.NewNop())
	remote := NewRedisEventRelay(client, "deskhub:events", logger.NewNop())
	require.NotEqual(t, local.InstanceID(), remote.InstanceID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Event, 4)
	subscribed := make(chan error, 1)
	go func() {
		subscribed <- local.Subscribe(ctx, func(e events.Event) { received <- e })
	}()

	// wait for the subscription to be registered
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, "deskhub:events").Result()
		return err == nil && n["deskhub:events"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	facts := visibility.TicketFacts{OwnerID: 4}
	require.NoError(t, local.Publish(ctx, events.New(events.TicketCreated, map[string]any{"id": 1})))
	require.NoError(t, remote.Publish(ctx, events.New(events.TicketUpdated(9), map[string]any{"status": "Closed"}).
		From("conn-1").
		For(&events.Audience{Ticket: &facts})))

	select {
	case e := <-received:
		assert.Equal(t, "ticket-updated-9", e.Name)
		assert.Equal(t, "conn-1", e.OriginConnID)
		require.NotNil(t, e.Audience)
		require.NotNil(t, e.Audience.Ticket)
		assert.Equal(t, uint(4), e.Audience.Ticket.OwnerID)

		frame, err := e.Frame()
		require.NoError(t, err)
		assert.JSONEq(t, `{"event":"ticket-updated-9","data":{"status":"Closed"}}`, string(frame))
	case <-time.After(2 * time.Second):
		t.Fatal("remote event not delivered")
	}

	select {
	case e := <-received:
		t.Fatalf("own event delivered: %s", e.Name)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-subscribed:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestRedisEventRelay_DecodeRejectsGarbage(t *testing.T) {
	relay := NewRedisEventRelay(newClient(t), "c", logger.NewNop())
	_, _, err := relay.decode("not json")
	assert.Error(t, err)
}
