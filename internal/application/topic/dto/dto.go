package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

type TopicDTO struct {
	ID          uint      `json:"id"`
	FromID      uint      `json:"from"`
	ToID        uint      `json:"to"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`
	UpdatedByID *uint     `json:"updatedBy"`
	Unread      int64     `json:"unread"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ConversationDTO struct {
	ID        uint      `json:"id"`
	TopicID   uint      `json:"topic"`
	FromID    uint      `json:"from"`
	ToID      uint      `json:"to"`
	Msg       string    `json:"msg"`
	Read      []uint    `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// PartnerDTO is one chat counterpart with the messages they sent me that I
// have not read.
type PartnerDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Activity string `json:"activity"`
	Unread   int64  `json:"unread"`
}

type TopicListDTO struct {
	Items      []*TopicDTO `json:"items"`
	TotalCount int64       `json:"totalCount"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

func ToTopicDTO(t *topic.Topic) *TopicDTO {
	if t == nil {
		return nil
	}
	return &TopicDTO{
		ID:          t.ID(),
		FromID:      t.FromID(),
		ToID:        t.ToID(),
		Subject:     t.Subject(),
		Status:      string(t.Status()),
		UpdatedByID: t.UpdatedByID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func ToTopicDTOs(topics []*topic.Topic, unread map[uint]int64) []*TopicDTO {
	out := mapper.MapSlicePtrSkipNil(topics, func(t *topic.Topic) *TopicDTO {
		d := ToTopicDTO(t)
		d.Unread = unread[t.ID()]
		return d
	})
	if out == nil {
		return []*TopicDTO{}
	}
	return out
}

func ToConversationDTO(c *topic.Conversation) *ConversationDTO {
	read := c.Read()
	if read == nil {
		read = []uint{}
	}
	return &ConversationDTO{
		ID:        c.ID(),
		TopicID:   c.TopicID(),
		FromID:    c.FromID(),
		ToID:      c.ToID(),
		Msg:       c.Msg(),
		Read:      read,
		CreatedAt: c.CreatedAt(),
	}
}

func ToConversationDTOs(convs []*topic.Conversation) []*ConversationDTO {
	out := mapper.MapSlicePtrSkipNil(convs, ToConversationDTO)
	if out == nil {
		return []*ConversationDTO{}
	}
	return out
}

func ToPartnerDTO(a *directory.Actor, unread int64) *PartnerDTO {
	return &PartnerDTO{
		ID:       a.ID(),
		Name:     a.Name(),
		Username: a.Username(),
		Activity: a.Activity().String(),
		Unread:   unread,
	}
}
