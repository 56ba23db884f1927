package ticket

import (
	"fmt"
	"time"

	"github.com/deskhub/deskhub/internal/domain/shared"
)

// Message is an append-only entry on a ticket. Its read set lives in the
// read tracker, not on the row.
type Message struct {
	id        uint
	ticketID  uint
	userID    uint
	body      string
	read      []uint
	createdAt time.Time
}

func NewMessage(ticketID, userID uint, body string) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("author is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body is required")
	}
	return &Message{
		ticketID:  ticketID,
		userID:    userID,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructMessage(id, ticketID, userID uint, body string, read []uint, createdAt time.Time) *Message {
	return &Message{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		body:      body,
		read:      read,
		createdAt: createdAt,
	}
}

func (m *Message) ID() uint             { return m.id }
func (m *Message) TicketID() uint       { return m.ticketID }
func (m *Message) UserID() uint         { return m.userID }
func (m *Message) Body() string         { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// Read returns the actors who have retrieved the message, when loaded.
func (m *Message) Read() []uint {
	return m.read
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	m.id = id
	return nil
}

func (m *Message) SetBody(body string) {
	m.body = body
}

// Attachment returns the blob referenced by the body, if any.
func (m *Message) Attachment() (shared.Attachment, bool) {
	return shared.ParseAttachment(m.body)
}
