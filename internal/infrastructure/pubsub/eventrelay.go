// Package pubsub relays realtime events between server instances over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/shared/goroutine"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

const publishTimeout = 3 * time.Second

// relayEnvelope is an event on the wire. InstanceID lets subscribers drop
// their own instance's events.
type relayEnvelope struct {
	InstanceID   string           `json:"instance_id"`
	Name         string           `json:"event"`
	Data         json.RawMessage  `json:"data,omitempty"`
	OriginConnID string           `json:"origin,omitempty"`
	Audience     *events.Audience `json:"audience,omitempty"`
	OccurredAt   int64            `json:"occurred_at"`
}

// RedisEventRelay publishes hub events on a Redis channel and delivers
// events from other instances to the local hub.
type RedisEventRelay struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisEventRelay(client *redis.Client, channel string, logger logger.Interface) *RedisEventRelay {
	return &RedisEventRelay{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (r *RedisEventRelay) InstanceID() string {
	return r.instanceID
}

// Forward publishes e in the background. Failures are logged only.
func (r *RedisEventRelay) Forward(e events.Event) {
	goroutine.SafeGo(r.logger, "event-relay-publish", func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		_ = r.Publish(ctx, e)
	})
}

// Publish writes e to the channel synchronously.
func (r *RedisEventRelay) Publish(ctx context.Context, e events.Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	payload, err := json.Marshal(relayEnvelope{
		InstanceID:   r.instanceID,
		Name:         e.Name,
		Data:         data,
		OriginConnID: e.OriginConnID,
		Audience:     e.Audience,
		OccurredAt:   e.OccurredAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal relay envelope: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Errorw("failed to publish event to relay",
			"event", e.Name,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	r.logger.Debugw("event published to relay", "event", e.Name)
	return nil
}

// Subscribe delivers events from other instances until ctx is done,
// reconnecting with exponential backoff.
func (r *RedisEventRelay) Subscribe(ctx context.Context, deliver func(e events.Event)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := r.subscribe(ctx, deliver)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warnw("relay subscription disconnected, reconnecting",
			"channel", r.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (r *RedisEventRelay) subscribe(ctx context.Context, deliver func(e events.Event)) error {
	ps := r.client.Subscribe(ctx, r.channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", r.channel, err)
	}

	r.logger.Infow("subscribed to event relay", "channel", r.channel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("event relay subscriber stopped",
				"channel", r.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				r.logger.Warnw("event relay channel closed", "channel", r.channel)
				return nil
			}
			e, own, err := r.decode(msg.Payload)
			if err != nil {
				r.logger.Warnw("failed to decode relayed event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			if own {
				continue
			}
			goroutine.SafeGo(r.logger, "event-relay-deliver", func() {
				deliver(e)
			})
		}
	}
}

func (r *RedisEventRelay) decode(payload string) (events.Event, bool, error) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return events.Event{}, false, err
	}
	if env.InstanceID == r.instanceID {
		return events.Event{}, true, nil
	}

	var data any
	if len(env.Data) > 0 {
		data = env.Data
	}
	return events.Event{
		Name:         env.Name,
		Data:         data,
		OriginConnID: env.OriginConnID,
		Audience:     env.Audience,
		OccurredAt:   time.UnixMilli(env.OccurredAt).UTC(),
	}, false, nil
}
