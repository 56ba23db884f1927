package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// BalanceStore is the part of the directory the ledger reads and writes.
type BalanceStore interface {
	GetByID(ctx context.Context, id uint) (*directory.Actor, error)
	UpdateSolde(ctx context.Context, id uint, solde float64) error
}

// BalanceLedger applies an approved or cancelled holiday to its owner's
// balance. The read-modify-write runs in a transaction without row locks;
// two concurrent approvals of the same request both debit.
type BalanceLedger struct {
	holidays holiday.Repository
	daysoff  holiday.DaysoffRepository
	balances BalanceStore
	tx       common.Transactor
	logger   logger.Interface
}

func NewBalanceLedger(
	holidays holiday.Repository,
	daysoff holiday.DaysoffRepository,
	balances BalanceStore,
	tx common.Transactor,
	logger logger.Interface,
) *BalanceLedger {
	return &BalanceLedger{
		holidays: holidays,
		daysoff:  daysoff,
		balances: balances,
		tx:       tx,
		logger:   logger,
	}
}

// WorkingDays counts the chargeable days of h.
func (l *BalanceLedger) WorkingDays(ctx context.Context, h *holiday.Holiday) (int, error) {
	start, end, err := h.Span()
	if err != nil {
		return 0, errors.NewValidationError(err.Error())
	}
	days, err := l.daysoff.List(ctx)
	if err != nil {
		return 0, err
	}
	return holiday.WorkingDays(start, end, days), nil
}

// Recompute debits actorID for an approved holiday and credits it for a
// cancelled one, then clears the approvals of a cancelled request. Other
// statuses leave the balance unchanged.
func (l *BalanceLedger) Recompute(ctx context.Context, actorID, holidayID uint) (*dto.BalanceDTO, error) {
	var result *dto.BalanceDTO
	err := l.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		h, err := l.holidays.GetByID(ctx, holidayID)
		if err != nil {
			return err
		}
		if h == nil {
			return errors.NewNotFoundError("holiday not found")
		}
		owner, err := l.balances.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if owner == nil {
			return errors.NewNotFoundError("actor not found")
		}

		days, err := l.WorkingDays(ctx, h)
		if err != nil {
			return err
		}

		switch {
		case h.IsApproved():
			owner.Debit(float64(days))
		case h.Status() == holiday.StatusCancel:
			owner.Credit(float64(days))
			h.ResetAfterCancel(owner.Role().IsChefEntity())
			if err := l.holidays.Update(ctx, h); err != nil {
				return err
			}
		default:
			result = &dto.BalanceDTO{ActorID: actorID, Solde: owner.Solde()}
			return nil
		}

		if err := l.balances.UpdateSolde(ctx, actorID, owner.Solde()); err != nil {
			return err
		}
		result = &dto.BalanceDTO{ActorID: actorID, Days: days, Solde: owner.Solde()}
		return nil
	})
	if err != nil {
		l.logger.Errorw("failed to recompute balance", "actor_id", actorID, "holiday_id", holidayID, "error", err)
		return nil, err
	}

	l.logger.Infow("balance recomputed", "actor_id", actorID, "holiday_id", holidayID, "days", result.Days, "solde", result.Solde)
	return result, nil
}
