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

type UpdateHolidayCommand struct {
	Caller    common.Caller
	HolidayID uint
	From      string
	To        string
	Notes     string
}

// UpdateHolidayUseCase edits the span and notes. The balance is not touched.
type UpdateHolidayUseCase struct {
	holidays  holiday.Repository
	queries   holiday.QueryRepository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewUpdateHolidayUseCase(
	holidays holiday.Repository,
	queries holiday.QueryRepository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *UpdateHolidayUseCase {
	return &UpdateHolidayUseCase{
		holidays:  holidays,
		queries:   queries,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UpdateHolidayUseCase) Execute(ctx context.Context, cmd UpdateHolidayCommand) (*dto.HolidayDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, cmd.HolidayID)
	if err != nil {
		return nil, err
	}
	if err := h.Edit(cmd.From, cmd.To, cmd.Notes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.holidays.Update(ctx, h); err != nil {
		uc.logger.Errorw("failed to update holiday", "holiday_id", h.ID(), "error", err)
		return nil, err
	}

	result := dto.ToHolidayDTO(h)
	uc.publisher.Publish(events.New(events.HolidayUpdated, result).
		From(cmd.Caller.ConnID).
		For(holidayAudience(ctx, uc.actors, h, uc.logger)))
	return result, nil
}
