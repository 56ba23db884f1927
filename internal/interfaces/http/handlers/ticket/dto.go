package ticket

import (
	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/usecases"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// FindRequest is the list body the front-end posts.
type FindRequest struct {
	QueryParams query.Params `json:"queryParams"`
}

type RoutingRequest struct {
	AssignedTo   *uint `json:"assigned_to"`
	EntityID     *uint `json:"entity"`
	DepartmentID *uint `json:"departement"`
	IssuerTeamID *uint `json:"issuer_team"`
	TargetTeamID *uint `json:"target_team"`
}

func (r RoutingRequest) toRouting() ticket.Routing {
	return ticket.Routing{
		AssignedTo:   r.AssignedTo,
		EntityID:     r.EntityID,
		DepartmentID: r.DepartmentID,
		IssuerTeamID: r.IssuerTeamID,
		TargetTeamID: r.TargetTeamID,
	}
}

type CreateTicketRequest struct {
	RoutingRequest
	Subject          string `json:"subject" validate:"required,max=255"`
	RelatedRessource string `json:"related_ressource" validate:"max=255"`
	Notes            string `json:"notes"`
	Severity         string `json:"severity" validate:"omitempty,oneof=MINOR MAJOR CRITICAL"`
	Type             string `json:"type" validate:"omitempty,oneof=Support Prod"`
	Message          string `json:"message"`
}

func (r *CreateTicketRequest) ToCommand(caller common.Caller) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Caller:           caller,
		Subject:          r.Subject,
		RelatedRessource: r.RelatedRessource,
		Notes:            r.Notes,
		Severity:         r.Severity,
		Type:             r.Type,
		Routing:          r.toRouting(),
		Message:          r.Message,
	}
}

type UpdateTicketRequest struct {
	RoutingRequest
	Subject          string `json:"subject" validate:"required,max=255"`
	RelatedRessource string `json:"related_ressource" validate:"max=255"`
	Notes            string `json:"notes"`
	Severity         string `json:"severity" validate:"omitempty,oneof=MINOR MAJOR CRITICAL"`
	Type             string `json:"type" validate:"omitempty,oneof=Support Prod"`
	Status           string `json:"status"`
}

func (r *UpdateTicketRequest) ToCommand(caller common.Caller, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Caller:           caller,
		TicketID:         ticketID,
		Subject:          r.Subject,
		RelatedRessource: r.RelatedRessource,
		Notes:            r.Notes,
		Severity:         r.Severity,
		Type:             r.Type,
		Status:           r.Status,
		Routing:          r.toRouting(),
	}
}

type IDsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

type BulkStatusRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1"`
	Status string `json:"status" validate:"required"`
}

type PinRequest struct {
	Pinned bool `json:"pinned"`
}

type ForwardRequest struct {
	TargetTeamID uint `json:"target_team" validate:"required"`
}

type PostMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
