package topic

import (
	"fmt"
	"time"

	"github.com/deskhub/deskhub/internal/domain/shared"
)

// Conversation is one chat entry inside a topic.
type Conversation struct {
	id        uint
	topicID   uint
	fromID    uint
	toID      uint
	msg       string
	read      []uint
	createdAt time.Time
}

func NewConversation(topicID, fromID, toID uint, msg string) (*Conversation, error) {
	if topicID == 0 {
		return nil, fmt.Errorf("topic ID is required")
	}
	if fromID == 0 || toID == 0 {
		return nil, fmt.Errorf("sender and recipient are required")
	}
	if len(msg) == 0 {
		return nil, fmt.Errorf("message is required")
	}
	return &Conversation{
		topicID:   topicID,
		fromID:    fromID,
		toID:      toID,
		msg:       msg,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructConversation(id, topicID, fromID, toID uint, msg string, read []uint, createdAt time.Time) *Conversation {
	return &Conversation{
		id:        id,
		topicID:   topicID,
		fromID:    fromID,
		toID:      toID,
		msg:       msg,
		read:      read,
		createdAt: createdAt,
	}
}

func (c *Conversation) ID() uint             { return c.id }
func (c *Conversation) TopicID() uint        { return c.topicID }
func (c *Conversation) FromID() uint         { return c.fromID }
func (c *Conversation) ToID() uint           { return c.toID }
func (c *Conversation) Msg() string          { return c.msg }
func (c *Conversation) Read() []uint         { return c.read }
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }

func (c *Conversation) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("conversation ID is already set")
	}
	c.id = id
	return nil
}

func (c *Conversation) SetMsg(msg string) {
	c.msg = msg
}

func (c *Conversation) Attachment() (shared.Attachment, bool) {
	return shared.ParseAttachment(c.msg)
}
