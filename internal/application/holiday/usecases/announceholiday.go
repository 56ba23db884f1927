package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type AnnounceHolidayCommand struct {
	Caller    common.Caller
	Event     string
	HolidayID uint
}

// AnnounceHolidayUseCase pushes a holiday-created variant chosen by the
// client event name for a request the caller can see.
type AnnounceHolidayUseCase struct {
	queries   holiday.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewAnnounceHolidayUseCase(
	queries holiday.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *AnnounceHolidayUseCase {
	return &AnnounceHolidayUseCase{
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *AnnounceHolidayUseCase) Execute(ctx context.Context, cmd AnnounceHolidayCommand) error {
	name, ok := events.HolidayCreatedFor(cmd.Event)
	if !ok {
		return errors.NewValidationError("unsupported holiday event", cmd.Event)
	}
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, cmd.HolidayID)
	if err != nil {
		return err
	}

	uc.publisher.Publish(events.New(name, dto.ToHolidayDTO(h)).
		From(cmd.Caller.ConnID).
		For(holidayAudience(ctx, uc.actors, h, uc.logger)))
	return nil
}
