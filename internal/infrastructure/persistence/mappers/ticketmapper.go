package mappers

import (
	"fmt"

	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between tickets and their rows.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error)
	MessageToDomain(model *models.MessageModel, read []uint) *ticket.Message
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return ticketMapper{}
}

func (ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	r := t.Routing()
	return &models.TicketModel{
		ID:               t.ID(),
		UserID:           t.UserID(),
		AssignedTo:       r.AssignedTo,
		EntityID:         r.EntityID,
		DepartmentID:     r.DepartmentID,
		IssuerTeamID:     r.IssuerTeamID,
		TargetTeamID:     r.TargetTeamID,
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

func (ticketMapper) ToDomain(m *models.TicketModel) (*ticket.Ticket, error) {
	t, err := ticket.ReconstructTicket(ticket.Snapshot{
		ID:     m.ID,
		UserID: m.UserID,
		Routing: ticket.Routing{
			AssignedTo:   m.AssignedTo,
			EntityID:     m.EntityID,
			DepartmentID: m.DepartmentID,
			IssuerTeamID: m.IssuerTeamID,
			TargetTeamID: m.TargetTeamID,
		},
		Content: ticket.Content{
			Subject:          m.Subject,
			RelatedRessource: m.RelatedRessource,
			Notes:            m.Notes,
			Severity:         vo.Severity(m.Severity),
			Type:             vo.TicketType(m.Type),
		},
		Status:     vo.TicketStatus(m.Status),
		ClosedBy:   m.ClosedBy,
		ResolvedBy: m.ResolvedBy,
		LastUpdate: m.LastUpdate,
		Archived:   m.Archived,
		Pinned:     m.Pinned,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", m.ID, err)
	}
	return t, nil
}

func (m ticketMapper) ToDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := m.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (ticketMapper) MessageToDomain(m *models.MessageModel, read []uint) *ticket.Message {
	return ticket.ReconstructMessage(m.ID, m.TicketID, m.UserID, m.Body, read, m.CreatedAt)
}
