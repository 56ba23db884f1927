package usecases

import (
	"context"
	"strings"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/ticket/dto"
	"github.com/deskhub/deskhub/internal/domain/readtracker"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
)

type SearchTicketsQuery struct {
	Caller common.Caller
	Text   string
}

// SearchTicketsUseCase finds visible tickets with a message containing the
// text, case-insensitively. Each ticket appears once.
type SearchTicketsUseCase struct {
	queries ticket.QueryRepository
	reads   readtracker.Repository
	scopes  *common.ScopeResolver
}

func NewSearchTicketsUseCase(
	queries ticket.QueryRepository,
	reads readtracker.Repository,
	scopes *common.ScopeResolver,
) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{queries: queries, reads: reads, scopes: scopes}
}

func (uc *SearchTicketsUseCase) Execute(ctx context.Context, q SearchTicketsQuery) ([]*dto.TicketDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	return uc.search(ctx, scope, q)
}

// ExecuteAdmin searches every ticket, archived ones included.
func (uc *SearchTicketsUseCase) ExecuteAdmin(ctx context.Context, q SearchTicketsQuery) ([]*dto.TicketDTO, error) {
	return uc.search(ctx, visibility.AdminScope(q.Caller.ActorID), q)
}

func (uc *SearchTicketsUseCase) search(ctx context.Context, scope visibility.Scope, q SearchTicketsQuery) ([]*dto.TicketDTO, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.NewValidationError("search text is required")
	}

	tickets, err := uc.queries.Search(ctx, scope, text)
	if err != nil {
		return nil, err
	}
	unread, err := unreadByTickets(ctx, uc.reads, q.Caller.ActorID, tickets)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTOs(tickets, unread), nil
}
