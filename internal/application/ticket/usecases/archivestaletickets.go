package usecases

import (
	"context"
	"time"

	"github.com/deskhub/deskhub/internal/domain/ticket"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// DefaultArchiveAfterMonths is how long a ticket may sit untouched before
// the sweep archives it.
const DefaultArchiveAfterMonths = 2

// ArchiveStaleTicketsUseCase archives tickets whose last update is at or
// before now minus the configured number of months. Concurrent edits are
// not guarded: whichever write lands last wins.
type ArchiveStaleTicketsUseCase struct {
	tickets ticket.TicketRepository
	months  int
	logger  logger.Interface
	now     func() time.Time
}

func NewArchiveStaleTicketsUseCase(tickets ticket.TicketRepository, months int, logger logger.Interface) *ArchiveStaleTicketsUseCase {
	if months <= 0 {
		months = DefaultArchiveAfterMonths
	}
	return &ArchiveStaleTicketsUseCase{
		tickets: tickets,
		months:  months,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Cutoff is the newest updated_at that still gets archived.
func (uc *ArchiveStaleTicketsUseCase) Cutoff() time.Time {
	return uc.now().AddDate(0, -uc.months, 0)
}

// Execute runs one sweep and returns the number of tickets archived.
func (uc *ArchiveStaleTicketsUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := uc.Cutoff()
	n, err := uc.tickets.ArchiveStale(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to archive stale tickets", "cutoff", cutoff, "error", err)
		return 0, err
	}
	if n > 0 {
		uc.logger.Infow("stale tickets archived", "count", n, "cutoff", cutoff)
	}
	return int(n), nil
}
