package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type CreateHolidayCommand struct {
	Caller common.Caller

	// UserID is the owner of the request; zero means the caller
	UserID uint
	From   string
	To     string
	Notes  string
	Status string
}

type CreateHolidayUseCase struct {
	holidays  holiday.Repository
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	publisher events.Publisher
	logger    logger.Interface
}

func NewCreateHolidayUseCase(
	holidays holiday.Repository,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	publisher events.Publisher,
	logger logger.Interface,
) *CreateHolidayUseCase {
	return &CreateHolidayUseCase{
		holidays:  holidays,
		scopes:    scopes,
		actors:    actors,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CreateHolidayUseCase) Execute(ctx context.Context, cmd CreateHolidayCommand) (*dto.HolidayDTO, error) {
	ownerID := cmd.UserID
	if ownerID == 0 {
		if err := requireActor(cmd.Caller); err != nil {
			return nil, err
		}
		ownerID = cmd.Caller.ActorID
	}

	owner, err := uc.actors.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errors.NewValidationError("holiday owner not found")
	}

	if ownerID != cmd.Caller.ActorID {
		scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
		if err != nil {
			return nil, err
		}
		if !scope.AllowsHoliday(visibility.HolidayFacts{Owner: visibility.PartyOf(owner)}) {
			return nil, errors.NewForbiddenError("cannot file a holiday for this actor")
		}
	}

	var createdBy *uint
	if cmd.Caller.ActorID != 0 {
		by := cmd.Caller.ActorID
		createdBy = &by
	}

	h, err := holiday.NewHoliday(ownerID, cmd.From, cmd.To, cmd.Notes, createdBy,
		holiday.Status(cmd.Status), owner.Role().IsChefEntity())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.holidays.Create(ctx, h); err != nil {
		uc.logger.Errorw("failed to create holiday", "user_id", ownerID, "error", err)
		return nil, err
	}

	result := dto.ToHolidayDTO(h)
	uc.publisher.Publish(events.New(createdEventName(owner), result).
		From(cmd.Caller.ConnID).
		For(&events.Audience{Holiday: &visibility.HolidayFacts{Owner: visibility.PartyOf(owner)}}))

	uc.logger.Infow("holiday created", "holiday_id", h.ID(), "user_id", ownerID, "status", h.Status())
	return result, nil
}
