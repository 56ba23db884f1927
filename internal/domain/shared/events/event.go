// Package events defines the realtime events pushed to connected clients.
package events

import (
	"encoding/json"
	"time"

	"github.com/deskhub/deskhub/internal/domain/visibility"
)

// Event is one notification. Name is the client-facing event name and may
// embed a container ID.
type Event struct {
	Name       string    `json:"event"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"-"`

	// OriginConnID is the connection that caused the event; broadcast skips it.
	OriginConnID string `json:"-"`

	// Audience restricts targeted delivery. Nil means everyone.
	Audience *Audience `json:"-"`
}

// Audience is the item an event is about, checked against each
// connection's scope in targeted mode.
type Audience struct {
	Ticket  *visibility.TicketFacts  `json:"ticket,omitempty"`
	Topic   *visibility.TopicFacts   `json:"topic,omitempty"`
	Holiday *visibility.HolidayFacts `json:"holiday,omitempty"`
}

func (a *Audience) facts() visibility.Facts {
	switch {
	case a.Ticket != nil:
		return a.Ticket
	case a.Topic != nil:
		return a.Topic
	case a.Holiday != nil:
		return a.Holiday
	}
	return nil
}

// Allows reports whether a connection with scope s may receive the event.
func (a *Audience) Allows(s visibility.Scope) bool {
	if a == nil {
		return true
	}
	f := a.facts()
	if f == nil {
		return true
	}
	return f.VisibleTo(s)
}

func New(name string, data any) Event {
	return Event{Name: name, Data: data, OccurredAt: time.Now().UTC()}
}

// From marks the connection that caused the event.
func (e Event) From(connID string) Event {
	e.OriginConnID = connID
	return e
}

func (e Event) For(a *Audience) Event {
	e.Audience = a
	return e
}

// Frame renders the {"event","data"} envelope written to the socket.
func (e Event) Frame() ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{e.Name, e.Data})
}

// Publisher delivers events to connected clients. Delivery is best-effort.
type Publisher interface {
	Publish(e Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
