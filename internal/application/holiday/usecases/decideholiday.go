package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// DecisionNotifier tells the back office about a decided request.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, owner *directory.Actor, h *dto.HolidayDTO) error
}

type DecideHolidayCommand struct {
	Caller    common.Caller
	HolidayID uint
	Decision  holiday.Decision
}

// DecideHolidayUseCase stores a reviewer's flags. A request approved by
// both sides is charged to its owner's balance in the same transaction.
type DecideHolidayUseCase struct {
	holidays  holiday.Repository
	queries   holiday.QueryRepository
	ledger    *BalanceLedger
	scopes    *common.ScopeResolver
	actors    common.ActorFinder
	tx        common.Transactor
	notifier  DecisionNotifier
	publisher events.Publisher
	logger    logger.Interface
}

func NewDecideHolidayUseCase(
	holidays holiday.Repository,
	queries holiday.QueryRepository,
	ledger *BalanceLedger,
	scopes *common.ScopeResolver,
	actors common.ActorFinder,
	tx common.Transactor,
	notifier DecisionNotifier,
	publisher events.Publisher,
	logger logger.Interface,
) *DecideHolidayUseCase {
	return &DecideHolidayUseCase{
		holidays:  holidays,
		queries:   queries,
		ledger:    ledger,
		scopes:    scopes,
		actors:    actors,
		tx:        tx,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *DecideHolidayUseCase) Execute(ctx context.Context, cmd DecideHolidayCommand) (*dto.HolidayDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, cmd.Caller)
	if err != nil {
		return nil, err
	}
	h, err := visibleHoliday(ctx, uc.queries, scope, cmd.HolidayID)
	if err != nil {
		return nil, err
	}

	approved := h.Decide(cmd.Decision)
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.holidays.Update(ctx, h); err != nil {
			return err
		}
		if !approved {
			return nil
		}
		_, err := uc.ledger.Recompute(ctx, h.UserID(), h.ID())
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to decide holiday", "holiday_id", h.ID(), "error", err)
		return nil, err
	}

	result := dto.ToHolidayDTO(h)
	uc.publisher.Publish(events.New(events.HolidayUpdated, result).
		From(cmd.Caller.ConnID).
		For(holidayAudience(ctx, uc.actors, h, uc.logger)))
	uc.notify(ctx, h.UserID(), result)

	uc.logger.Infow("holiday decided", "holiday_id", h.ID(), "status", h.Status(), "approved", approved)
	return result, nil
}

// notify is best-effort; a mail failure never undoes the decision.
func (uc *DecideHolidayUseCase) notify(ctx context.Context, ownerID uint, h *dto.HolidayDTO) {
	if uc.notifier == nil || h.Status == string(holiday.StatusOpen) {
		return
	}
	owner, err := uc.actors.GetByID(ctx, ownerID)
	if err != nil || owner == nil {
		uc.logger.Warnw("skipping decision notice, owner unavailable", "holiday_id", h.ID, "error", err)
		return
	}
	if err := uc.notifier.NotifyDecision(ctx, owner, h); err != nil {
		uc.logger.Warnw("failed to send decision notice", "holiday_id", h.ID, "error", err)
	}
}
