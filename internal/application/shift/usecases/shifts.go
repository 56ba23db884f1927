package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/shift/dto"
	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ShiftUseCase struct {
	shifts shift.Repository
	logger logger.Interface
}

func NewShiftUseCase(shifts shift.Repository, logger logger.Interface) *ShiftUseCase {
	return &ShiftUseCase{shifts: shifts, logger: logger}
}

// List returns the catalogue. Hidden shifts are dropped unless
// includeDeleted is set.
func (uc *ShiftUseCase) List(ctx context.Context, includeDeleted bool) ([]*dto.ShiftDTO, error) {
	list, err := uc.shifts.List(ctx)
	if err != nil {
		return nil, err
	}
	if !includeDeleted {
		kept := list[:0]
		for _, s := range list {
			if !s.Deleted() {
				kept = append(kept, s)
			}
		}
		list = kept
	}
	return dto.ToShiftDTOs(list), nil
}

func (uc *ShiftUseCase) Count(ctx context.Context) (int64, error) {
	return uc.shifts.Count(ctx)
}

// Create adds a removable shift owned by the caller.
func (uc *ShiftUseCase) Create(ctx context.Context, caller common.Caller, spec shift.Spec) (*dto.ShiftDTO, error) {
	if !caller.Admin {
		spec.UserID = &caller.ActorID
	}
	s, err := shift.NewShift(spec)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.shifts.Create(ctx, s); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("shift already exists")
		}
		return nil, err
	}
	uc.logger.Infow("shift created", "shift_id", s.ID(), "value", s.Value())
	return dto.ToShiftDTO(s), nil
}

func (uc *ShiftUseCase) SetDeleted(ctx context.Context, id uint, deleted bool) (*dto.ShiftDTO, error) {
	s, err := uc.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewNotFoundError("shift not found")
	}
	if err := s.SetDeleted(deleted); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.shifts.SetDeleted(ctx, id, deleted); err != nil {
		return nil, err
	}
	return dto.ToShiftDTO(s), nil
}

// SeedDefaults installs the built-in catalogue on first start.
func (uc *ShiftUseCase) SeedDefaults(ctx context.Context) (int, error) {
	n, err := uc.shifts.SeedDefaults(ctx, shift.Defaults())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Infow("default shifts seeded", "count", n)
	}
	return n, nil
}
