// Package services provides infrastructure services.
package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/goroutine"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// Hub manages client WebSocket connections and fans events out to them.
type Hub struct {
	// actor ID -> connection ID -> connection
	conns   map[uint]map[string]*HubConn
	connsMu sync.RWMutex

	delivery   string
	sendBuffer int

	relay   Relay
	relayMu sync.RWMutex

	onActorOffline func(actorID uint)

	logger logger.Interface
}

// HubConn is one client connection. An actor may hold several.
type HubConn struct {
	ID          string
	ActorID     uint
	Scope       visibility.Scope
	Conn        *websocket.Conn
	Send        chan []byte
	ConnectedAt time.Time

	lastSeenMu sync.Mutex
	lastSeen   time.Time
}

func (c *HubConn) Touch() {
	c.lastSeenMu.Lock()
	c.lastSeen = time.Now()
	c.lastSeenMu.Unlock()
}

func (c *HubConn) LastSeen() time.Time {
	c.lastSeenMu.Lock()
	defer c.lastSeenMu.Unlock()
	return c.lastSeen
}

// Relay forwards locally published events to other instances.
type Relay interface {
	Forward(e events.Event)
}

// NewHub creates a hub. delivery is config.DeliveryBroadcast or
// config.DeliveryTargeted.
func NewHub(delivery string, sendBuffer int, log logger.Interface) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	if delivery == "" {
		delivery = config.DeliveryBroadcast
	}
	return &Hub{
		conns:      make(map[uint]map[string]*HubConn),
		delivery:   delivery,
		sendBuffer: sendBuffer,
		logger:     log,
	}
}

// SetRelay attaches the cross-instance relay.
func (h *Hub) SetRelay(r Relay) {
	h.relayMu.Lock()
	h.relay = r
	h.relayMu.Unlock()
}

// SetOnActorOffline sets the callback run when an actor's last connection goes.
func (h *Hub) SetOnActorOffline(fn func(actorID uint)) {
	h.onActorOffline = fn
}

// Register adds a connection for the actor with the given scope.
func (h *Hub) Register(actorID uint, scope visibility.Scope, conn *websocket.Conn) *HubConn {
	now := time.Now()
	c := &HubConn{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Scope:       scope,
		Conn:        conn,
		Send:        make(chan []byte, h.sendBuffer),
		ConnectedAt: now,
		lastSeen:    now,
	}

	h.connsMu.Lock()
	if h.conns[actorID] == nil {
		h.conns[actorID] = make(map[string]*HubConn)
	}
	h.conns[actorID][c.ID] = c
	count := len(h.conns[actorID])
	h.connsMu.Unlock()

	h.logger.Infow("client connected via websocket",
		"actor_id", actorID,
		"conn_id", c.ID,
		"connections", count,
	)
	return c
}

// Unregister removes a connection and closes its send channel. It is safe
// to call more than once.
func (h *Hub) Unregister(c *HubConn) {
	h.connsMu.Lock()
	actorConns, ok := h.conns[c.ActorID]
	if !ok {
		h.connsMu.Unlock()
		return
	}
	if _, ok := actorConns[c.ID]; !ok {
		h.connsMu.Unlock()
		return
	}
	delete(actorConns, c.ID)
	close(c.Send)
	last := len(actorConns) == 0
	if last {
		delete(h.conns, c.ActorID)
	}
	h.connsMu.Unlock()

	h.logger.Infow("client disconnected",
		"actor_id", c.ActorID,
		"conn_id", c.ID,
	)

	if last && h.onActorOffline != nil {
		actorID := c.ActorID
		goroutine.SafeGo(h.logger, "hub-actor-offline", func() {
			h.onActorOffline(actorID)
		})
	}
}

// Publish delivers e locally and hands it to the relay.
func (h *Hub) Publish(e events.Event) {
	h.Deliver(e)

	h.relayMu.RLock()
	r := h.relay
	h.relayMu.RUnlock()
	if r != nil {
		r.Forward(e)
	}
}

// Deliver sends e to local connections only. Broadcast mode skips the
// originating connection; targeted mode also checks the event audience
// against each connection's scope.
func (h *Hub) Deliver(e events.Event) int {
	frame, err := e.Frame()
	if err != nil {
		h.logger.Errorw("failed to encode event", "event", e.Name, "error", err)
		return 0
	}

	targeted := h.delivery == config.DeliveryTargeted

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	sent := 0
	for _, actorConns := range h.conns {
		for _, c := range actorConns {
			if c.ID == e.OriginConnID {
				continue
			}
			if targeted && !e.Audience.Allows(c.Scope) {
				continue
			}
			if h.trySend(c, frame, e.Name) {
				sent++
			}
		}
	}
	return sent
}

// SendTo writes e to a single connection, such as a reply to its sender.
func (h *Hub) SendTo(c *HubConn, e events.Event) error {
	frame, err := e.Frame()
	if err != nil {
		return err
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	if _, ok := h.conns[c.ActorID][c.ID]; !ok {
		return ErrConnNotRegistered
	}
	if !h.trySend(c, frame, e.Name) {
		return ErrSendChannelFull
	}
	return nil
}

// trySend never blocks; callers hold connsMu so Send is still open.
func (h *Hub) trySend(c *HubConn, frame []byte, name string) bool {
	select {
	case c.Send <- frame:
		return true
	default:
		h.logger.Warnw("dropping event for slow client",
			"event", name,
			"actor_id", c.ActorID,
			"conn_id", c.ID,
		)
		return false
	}
}

// IsOnline reports whether the actor has at least one connection.
func (h *Hub) IsOnline(actorID uint) bool {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()
	return len(h.conns[actorID]) > 0
}

// OnlineActors returns connected actor IDs in ascending order.
func (h *Hub) OnlineActors() []uint {
	h.connsMu.RLock()
	ids := make([]uint, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	h.connsMu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HubStats is a point-in-time view of the hub.
type HubStats struct {
	Actors       int        `json:"actors"`
	Connections  int        `json:"connections"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// Stats counts connected actors and connections. LastActivity is the most
// recent frame or pong received on any connection.
func (h *Hub) Stats() HubStats {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	stats := HubStats{Actors: len(h.conns)}
	var latest time.Time
	for _, actorConns := range h.conns {
		stats.Connections += len(actorConns)
		for _, c := range actorConns {
			if seen := c.LastSeen(); seen.After(latest) {
				latest = seen
			}
		}
	}
	if !latest.IsZero() {
		stats.LastActivity = &latest
	}
	return stats
}

// HubErrors defines hub related errors.
var (
	ErrConnNotRegistered = &HubError{Code: "CONN_NOT_REGISTERED", Message: "connection not registered"}
	ErrSendChannelFull   = &HubError{Code: "SEND_CHANNEL_FULL", Message: "send channel full"}
)

// HubError represents a hub error.
type HubError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *HubError) Error() string {
	return e.Message
}
