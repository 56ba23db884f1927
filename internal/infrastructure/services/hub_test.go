package services

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func drain(c *HubConn) []string {
	var names []string
	for {
		select {
		case frame := <-c.Send:
			var env struct {
				Event string `json:"event"`
			}
			_ = json.Unmarshal(frame, &env)
			names = append(names, env.Event)
		default:
			return names
		}
	}
}

func TestHub_BroadcastSkipsOrigin(t *testing.T) {
	hub := NewHub(config.DeliveryBroadcast, 8, logger.NewNop())
	sender := hub.Register(1, visibility.Scope{ActorID: 1}, nil)
	otherTab := hub.Register(1, visibility.Scope{ActorID: 1}, nil)
	stranger := hub.Register(2, visibility.Scope{ActorID: 2}, nil)

	n := hub.Deliver(events.New(events.MessageCreated(7), map[string]uint{"ticket": 7}).From(sender.ID))
	assert.Equal(t, 2, n)

	assert.Empty(t, drain(sender))
	assert.Equal(t, []string{"messageCreated-7"}, drain(otherTab))
	assert.Equal(t, []string{"messageCreated-7"}, drain(stranger))
}

func TestHub_TargetedChecksAudience(t *testing.T) {
	hub := NewHub(config.DeliveryTargeted, 8, logger.NewNop())
	owner := hub.Register(1, visibility.Scope{ActorID: 1, Role: directory.RoleTeamMember}, nil)
	stranger := hub.Register(2, visibility.Scope{ActorID: 2, Role: directory.RoleTeamMember}, nil)

	facts := visibility.TicketFacts{OwnerID: 1, Owner: visibility.Party{ID: 1}}
	hub.Deliver(events.New(events.TicketUpdated(3), nil).For(&events.Audience{Ticket: &facts}))
	hub.Deliver(events.New(events.ComplainCreated, nil))

	assert.Equal(t, []string{"ticket-updated-3", events.ComplainCreated}, drain(owner))
	assert.Equal(t, []string{events.ComplainCreated}, drain(stranger))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(config.DeliveryBroadcast, 1, logger.NewNop())
	slow := hub.Register(1, visibility.Scope{ActorID: 1}, nil)

	assert.Equal(t, 1, hub.Deliver(events.New(events.TicketCreated, nil)))
	assert.Equal(t, 0, hub.Deliver(events.New(events.TicketCreated, nil)))
	assert.ErrorIs(t, hub.SendTo(slow, events.New(events.MessageSent, nil)), ErrSendChannelFull)
}

func TestHub_LastConnectionGoingOffline(t *testing.T) {
	hub := NewHub(config.DeliveryBroadcast, 4, logger.NewNop())

	var mu sync.Mutex
	var offline []uint
	done := make(chan struct{}, 1)
	hub.SetOnActorOffline(func(actorID uint) {
		mu.Lock()
		offline = append(offline, actorID)
		mu.Unlock()
		done <- struct{}{}
	})

	a := hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	b := hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	assert.Equal(t, []uint{5}, hub.OnlineActors())

	hub.Unregister(a)
	assert.True(t, hub.IsOnline(5))

	hub.Unregister(b)
	hub.Unregister(b)
	assert.False(t, hub.IsOnline(5))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("offline callback not called")
	}
	mu.Lock()
	assert.Equal(t, []uint{5}, offline)
	mu.Unlock()

	_, open := <-b.Send
	assert.False(t, open)
	assert.ErrorIs(t, hub.SendTo(b, events.New(events.MessageSent, nil)), ErrConnNotRegistered)
}

type recordingRelay struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recordingRelay) Forward(e events.Event) {
	r.mu.Lock()
	r.got = append(r.got, e)
	r.mu.Unlock()
}

func TestHub_PublishForwardsToRelay(t *testing.T) {
	hub := NewHub(config.DeliveryBroadcast, 4, logger.NewNop())
	relay := &recordingRelay{}
	hub.SetRelay(relay)
	c := hub.Register(1, visibility.Scope{ActorID: 1}, nil)

	hub.Publish(events.New(events.HolidayUpdated, map[string]uint{"id": 3}))

	require.Len(t, relay.got, 1)
	assert.Equal(t, events.HolidayUpdated, relay.got[0].Name)
	assert.Equal(t, []string{events.HolidayUpdated}, drain(c))
}

func TestHub_StatsTracksLatestActivity(t *testing.T) {
	hub := NewHub(config.DeliveryBroadcast, 8, logger.NewNop())
	assert.Equal(t, HubStats{}, hub.Stats())

	a := hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	hub.Register(6, visibility.Scope{ActorID: 6}, nil)

	time.Sleep(2 * time.Millisecond)
	a.Touch()

	stats := hub.Stats()
	assert.Equal(t, 2, stats.Actors)
	assert.Equal(t, 3, stats.Connections)
	require.NotNil(t, stats.LastActivity)
	assert.Equal(t, a.LastSeen(), *stats.LastActivity)

	hub.Unregister(a)
	assert.Equal(t, 2, hub.Stats().Connections)
}
