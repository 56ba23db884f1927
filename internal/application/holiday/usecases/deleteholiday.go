package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type DeleteHolidayCommand struct {
	Caller    common.Caller
	HolidayID uint
}

type DeleteHolidayUseCase struct {
	holidays holiday.Repository
	queries  holiday.QueryRepository
	scopes   *common.ScopeResolver
	logger   logger.Interface
}

func NewDeleteHolidayUseCase(
	holidays holiday.Repository,
	queries holiday.QueryRepository,
	scopes *common.ScopeResolver,
	logger logger.Interface,
) *DeleteHolidayUseCase {
	return &DeleteHolidayUseCase{holidays: holidays, queries: queries, scopes: scopes, logger: logger}
}

func (uc *DeleteHolidayUseCase) Execute(ctx context.Context, cmd DeleteHolidayCommand) error {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, cmd.HolidayID)
	if err != nil {
		return err
	}
	if err := uc.holidays.Delete(ctx, h.ID()); err != nil {
		uc.logger.Errorw("failed to delete holiday", "holiday_id", h.ID(), "error", err)
		return err
	}
	uc.logger.Infow("holiday deleted", "holiday_id", h.ID(), "by", cmd.Caller.ActorID)
	return nil
}
