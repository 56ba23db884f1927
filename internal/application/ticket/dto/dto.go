package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

type TicketDTO struct {
	ID               uint       `json:"id"`
	UserID           uint       `json:"user"`
	AssignedTo       *uint      `json:"assigned_to"`
	EntityID         *uint      `json:"entity"`
	DepartmentID     *uint      `json:"departement"`
	IssuerTeamID     *uint      `json:"issuer_team"`
	TargetTeamID     *uint      `json:"target_team"`
	Status           string     `json:"status"`
	Severity         string     `json:"severity"`
	Type             string     `json:"type"`
	Subject          string     `json:"subject"`
	RelatedRessource string     `json:"related_ressource"`
	Notes            string     `json:"notes"`
	ClosedBy         *uint      `json:"closed_by"`
	ResolvedBy       *uint      `json:"resolved_by"`
	LastUpdate       *time.Time `json:"last_update"`
	Archived         bool       `json:"archived"`
	Pinned           bool       `json:"pinned"`
	Unread           int64      `json:"unread"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type MessageDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket"`
	UserID    uint      `json:"user"`
	Body      string    `json:"message"`
	Read      []uint    `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusCountsDTO keeps the counter names the dashboard reads.
type StatusCountsDTO struct {
	OpenCount     int64 `json:"OpenCount"`
	ProgressCount int64 `json:"ProgressCount"`
	ResolveCount  int64 `json:"ResolveCount"`
	ReOpenCount   int64 `json:"ReOpenCount"`
	CloseCount    int64 `json:"CloseCount"`
}

type TicketListDTO struct {
	Items      []*TicketDTO `json:"items"`
	TotalCount int64        `json:"totalCount"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:               t.ID(),
		UserID:           t.UserID(),
		AssignedTo:       t.AssignedTo(),
		EntityID:         t.EntityID(),
		DepartmentID:     t.DepartmentID(),
		IssuerTeamID:     t.IssuerTeamID(),
		TargetTeamID:     t.TargetTeamID(),
		Status:           t.Status().String(),
		Severity:         t.Severity().String(),
		Type:             t.Type().String(),
		Subject:          t.Subject(),
		RelatedRessource: t.RelatedRessource(),
		Notes:            t.Notes(),
		ClosedBy:         t.ClosedBy(),
		ResolvedBy:       t.ResolvedBy(),
		LastUpdate:       t.LastUpdate(),
		Archived:         t.Archived(),
		Pinned:           t.Pinned(),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

// ToTicketDTOs converts tickets and attaches the caller's unread counts.
func ToTicketDTOs(tickets []*ticket.Ticket, unread map[uint]int64) []*TicketDTO {
	out := mapper.MapSlicePtrSkipNil(tickets, func(t *ticket.Ticket) *TicketDTO {
		d := ToTicketDTO(t)
		d.Unread = unread[t.ID()]
		return d
	})
	if out == nil {
		return []*TicketDTO{}
	}
	return out
}

func ToMessageDTO(m *ticket.Message) *MessageDTO {
	read := m.Read()
	if read == nil {
		read = []uint{}
	}
	return &MessageDTO{
		ID:        m.ID(),
		TicketID:  m.TicketID(),
		UserID:    m.UserID(),
		Body:      m.Body(),
		Read:      read,
		CreatedAt: m.CreatedAt(),
	}
}

func ToMessageDTOs(messages []*ticket.Message) []*MessageDTO {
	out := mapper.MapSlicePtrSkipNil(messages, ToMessageDTO)
	if out == nil {
		return []*MessageDTO{}
	}
	return out
}
