package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
)

type ListHolidaysQuery struct {
	Caller common.Caller
	Params query.Params
}

// ListHolidaysUseCase lists visible requests. Params.Month, when set,
// keeps the requests created in that month.
type ListHolidaysUseCase struct {
	queries holiday.QueryRepository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewListHolidaysUseCase(queries holiday.QueryRepository, scopes *common.ScopeResolver, logger logger.Interface) *ListHolidaysUseCase {
	return &ListHolidaysUseCase{queries: queries, scopes: scopes, logger: logger}
}

func (uc *ListHolidaysUseCase) Execute(ctx context.Context, q ListHolidaysQuery) (*dto.HolidayListDTO, error) {
	if q.Params.Month < 0 || q.Params.Month > 12 {
		return nil, errors.NewValidationError("month must be between 1 and 12")
	}
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}
	holidays, total, err := uc.queries.List(ctx, scope, q.Params)
	if err != nil {
		uc.logger.Errorw("failed to list holidays", "actor_id", q.Caller.ActorID, "error", err)
		return nil, err
	}
	return &dto.HolidayListDTO{
		Items:      dto.ToHolidayDTOs(holidays),
		TotalCount: total,
		Page:       q.Params.Page(),
		PageSize:   q.Params.Size(),
	}, nil
}
