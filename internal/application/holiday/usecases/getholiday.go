package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/holiday"
)

type GetHolidayQuery struct {
	Caller    common.Caller
	HolidayID uint
}

type GetHolidayUseCase struct {
	queries holiday.QueryRepository
	scopes  *common.ScopeResolver
}

func NewGetHolidayUseCase(queries holiday.QueryRepository, scopes *common.ScopeResolver) *GetHolidayUseCase {
	return &GetHolidayUseCase{queries: queries, scopes: scopes}
}

func (uc *GetHolidayUseCase) Execute(ctx context.Context, q GetHolidayQuery) (*dto.HolidayDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, q.HolidayID)
	if err != nil {
		return nil, err
	}
	return dto.ToHolidayDTO(h), nil
}
