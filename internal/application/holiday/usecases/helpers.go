package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func visibleHoliday(ctx context.Context, holidays holiday.QueryRepository, scope visibility.Scope, holidayID uint) (*holiday.Holiday, error) {
	h, err := holidays.GetVisible(ctx, scope, holidayID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.NewNotFoundError("holiday not found")
	}
	return h, nil
}

func holidayAudience(ctx context.Context, actors common.ActorFinder, h *holiday.Holiday, log logger.Interface) *events.Audience {
	owner, err := common.Party(ctx, actors, h.UserID())
	if err != nil {
		log.Warnw("failed to resolve holiday owner", "holiday_id", h.ID(), "error", err)
		owner = visibility.Party{ID: h.UserID()}
	}
	return &events.Audience{Holiday: &visibility.HolidayFacts{Owner: owner}}
}

// createdEventName picks the planning board a new request is announced on.
func createdEventName(owner *directory.Actor) string {
	switch owner.UserType() {
	case directory.UserTypeSupport:
		return events.HolidayCreatedTech
	case directory.UserTypeProd:
		return events.HolidayCreatedProd
	}
	return events.HolidayCreated
}

func requireActor(caller common.Caller) error {
	if caller.ActorID == 0 {
		return errors.NewForbiddenError("an actor account is required")
	}
	return nil
}
