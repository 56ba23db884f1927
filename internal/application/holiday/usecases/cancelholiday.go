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

type CancelHolidayCommand struct {
	Caller    common.Caller
	HolidayID uint
}

// CancelHolidayUseCase cancels a request. Days are given back only when the
// request had been approved, so cancelling an open request is free.
type CancelHolidayUseCase struct {
	holidays  holiday.Repository
	queries   holiday.QueryRepository
	ledger    *BalanceLedger
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	tx        common.Transactor
	publisher events.Publisher
	logger    logger.Interface
}

func NewCancelHolidayUseCase(
	holidays holiday.Repository,
	queries holiday.QueryRepository,
	ledger *BalanceLedger,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	tx common.Transactor,
	publisher events.Publisher,
	logger logger.Interface,
) *CancelHolidayUseCase {
	return &CancelHolidayUseCase{
		holidays:  holidays,
		queries:   queries,
		ledger:    ledger,
		scopes:    scopes,
		actors:    actors,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CancelHolidayUseCase) Execute(ctx context.Context, cmd CancelHolidayCommand) (*dto.HolidayDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, cmd.HolidayID)
	if err != nil {
		return nil, err
	}

	prev, err := h.Cancel()
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.holidays.Update(ctx, h); err != nil {
			return err
		}
		if prev != holiday.StatusApprove {
			return nil
		}
		if _, err := uc.ledger.Recompute(ctx, h.UserID(), h.ID()); err != nil {
			return err
		}
		// the ledger cleared approvals on the stored row
		reloaded, err := uc.holidays.GetByID(ctx, h.ID())
		if err != nil {
			return err
		}
		if reloaded != nil {
			h = reloaded
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to cancel holiday", "holiday_id", cmd.HolidayID, "error", err)
		return nil, err
	}

	result := dto.ToHolidayDTO(h)
	uc.publisher.Publish(events.New(events.HolidayUpdated, result).
		From(cmd.Caller.ConnID).
		For(holidayAudience(ctx, uc.actors, h, uc.logger)))

	uc.logger.Infow("holiday cancelled", "holiday_id", h.ID(), "previous_status", prev)
	return result, nil
}
