package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type DaysoffCommand struct {
	Name string
	Date string
}

// DaysoffUseCase manages the public days off. Write access is gated at
// the route.
type DaysoffUseCase struct {
	daysoff holiday.DaysoffRepository
	logger  logger.Interface
}

func NewDaysoffUseCase(daysoff holiday.DaysoffRepository, logger logger.Interface) *DaysoffUseCase {
	return &DaysoffUseCase{daysoff: daysoff, logger: logger}
}

func (uc *DaysoffUseCase) List(ctx context.Context) ([]*dto.DaysoffDTO, error) {
	days, err := uc.daysoff.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToDaysoffDTOs(days), nil
}

func (uc *DaysoffUseCase) Create(ctx context.Context, cmd DaysoffCommand) (*dto.DaysoffDTO, error) {
	d, err := holiday.NewDaysoff(cmd.Name, cmd.Date)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.daysoff.Create(ctx, d); err != nil {
		uc.logger.Errorw("failed to create day off", "date", cmd.Date, "error", err)
		return nil, err
	}
	uc.logger.Infow("day off created", "id", d.ID(), "date", d.Date())
	return dto.ToDaysoffDTO(d), nil
}

func (uc *DaysoffUseCase) Update(ctx context.Context, id uint, cmd DaysoffCommand) (*dto.DaysoffDTO, error) {
	d, err := uc.daysoff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.NewNotFoundError("day off not found")
	}
	if err := d.Rename(cmd.Name, cmd.Date); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.daysoff.Update(ctx, d); err != nil {
		return nil, err
	}
	return dto.ToDaysoffDTO(d), nil
}

func (uc *DaysoffUseCase) Delete(ctx context.Context, id uint) error {
	d, err := uc.daysoff.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return errors.NewNotFoundError("day off not found")
	}
	return uc.daysoff.Delete(ctx, id)
}
