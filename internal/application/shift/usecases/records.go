package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/shift/dto"
	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type RecordCommand struct {
	UserID  uint
	ShiftID uint
	Day     string
	BoxDay  int
}

type PlanningQuery struct {
	Caller   common.Caller
	From     string
	To       string
	EntityID *uint
	TeamIDs  []uint
}

// PlanningUseCase maintains the shift planning. Writes are gated at the
// route; reads follow the caller's entity and planning teams.
type PlanningUseCase struct {
	records shift.RecordRepository
	scopes  *common.ScopeResolver
	logger  logger.Interface
}

func NewPlanningUseCase(records shift.RecordRepository, scopes *common.ScopeResolver, logger logger.Interface) *PlanningUseCase {
	return &PlanningUseCase{records: records, scopes: scopes, logger: logger}
}

// Assign plans every record not already planned and returns how many were
// added.
func (uc *PlanningUseCase) Assign(ctx context.Context, cmds []RecordCommand) (int64, error) {
	if len(cmds) == 0 {
		return 0, errors.NewValidationError("records are required")
	}
	records := make([]*shift.Record, 0, len(cmds))
	for _, cmd := range cmds {
		rec, err := shift.NewRecord(cmd.UserID, cmd.ShiftID, cmd.Day, cmd.BoxDay)
		if err != nil {
			return 0, errors.NewValidationError(err.Error())
		}
		records = append(records, rec)
	}
	n, err := uc.records.CreateMissing(ctx, records)
	if err != nil {
		uc.logger.Errorw("failed to plan shifts", "records", len(records), "error", err)
		return 0, err
	}
	uc.logger.Infow("shifts planned", "requested", len(records), "added", n)
	return n, nil
}

func (uc *PlanningUseCase) Remove(ctx context.Context, id uint) error {
	n, err := uc.records.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("shift record not found")
	}
	return nil
}

// RemoveInRange drops the given records, sparing those outside [from, to].
func (uc *PlanningUseCase) RemoveInRange(ctx context.Context, ids []uint, from, to string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.NewValidationError("ids are required")
	}
	if err := shift.ValidateRange(from, to); err != nil {
		return 0, errors.NewValidationError(err.Error())
	}
	return uc.records.DeleteInRange(ctx, ids, from, to)
}

// Planning lists the records between From and To. Non-admin callers
// default to their own entity, may only name an entity they are granted,
// and are narrowed to their planning teams.
func (uc *PlanningUseCase) Planning(ctx context.Context, q PlanningQuery) ([]*dto.RecordDTO, error) {
	if err := shift.ValidateRange(q.From, q.To); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	scope, err := uc.scopes.Resolve(ctx, q.Caller)
	if err != nil {
		return nil, err
	}

	entityID := q.EntityID
	if !scope.Admin {
		if entityID == nil {
			entityID = scope.EntityID
		}
		if entityID != nil && !scope.AllowsEntity(entityID) {
			return nil, errors.NewForbiddenError("entity not granted")
		}
	}
	teams := scope.PlanningTeams(q.TeamIDs)
	if teams != nil && len(teams) == 0 {
		return []*dto.RecordDTO{}, nil
	}

	list, err := uc.records.List(ctx, shift.RecordFilter{
		From:     q.From,
		To:       q.To,
		EntityID: entityID,
		TeamIDs:  teams,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToRecordDTOs(list), nil
}
