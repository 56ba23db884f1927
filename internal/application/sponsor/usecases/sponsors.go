package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/sponsor/dto"
	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type SponsorCommand struct {
	Name     string
	Login    sponsor.Login
	Entities []uint
}

type BulkStatusCommand struct {
	IDs    []uint
	Status string
}

type BulkResult struct {
	Affected int64 `json:"affected"`
}

// SponsorUseCase serves the sponsor directory. Agents see active sponsors
// of the entities they are granted; writes are gated at the route.
type SponsorUseCase struct {
	sponsors sponsor.Repository
	scopes   *common.ScopeResolver
	logger   logger.Interface
}

func NewSponsorUseCase(sponsors sponsor.Repository, scopes *common.ScopeResolver, logger logger.Interface) *SponsorUseCase {
	return &SponsorUseCase{sponsors: sponsors, scopes: scopes, logger: logger}
}

// entityFilter is nil for admins (every entity) and the granted entities
// otherwise. ok is false when the caller reaches no entity at all.
func (uc *SponsorUseCase) entityFilter(ctx context.Context, caller common.Caller) (ids []uint, ok bool, err error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, false, err
	}
	if scope.Admin {
		return nil, true, nil
	}
	granted := scope.GrantedEntities()
	return granted, len(granted) > 0, nil
}

func (uc *SponsorUseCase) ListAll(ctx context.Context) ([]*dto.SponsorDTO, error) {
	list, err := uc.sponsors.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSponsorDTOs(list), nil
}

func (uc *SponsorUseCase) ListForCaller(ctx context.Context, caller common.Caller) ([]*dto.SponsorSummaryDTO, error) {
	ids, ok, err := uc.entityFilter(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*dto.SponsorSummaryDTO{}, nil
	}
	list, err := uc.sponsors.ListActiveByEntities(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.ToSponsorSummaryDTOs(list), nil
}

func (uc *SponsorUseCase) GroupByEntity(ctx context.Context, caller common.Caller) ([]*dto.EntityGroupDTO, error) {
	ids, ok, err := uc.entityFilter(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*dto.EntityGroupDTO{}, nil
	}
	groups, err := uc.sponsors.GroupByEntity(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.ToEntityGroupDTOs(groups), nil
}

// Login discloses the portal credentials of an active sponsor attached to
// an entity the caller is granted. Anything else is not found.
func (uc *SponsorUseCase) Login(ctx context.Context, caller common.Caller, id uint) (*dto.SponsorLoginDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	s, err := uc.sponsors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !s.IsActive() || !scope.AllowsAnyEntity(s.EntityIDs()) {
		return nil, errors.NewNotFoundError("sponsor not found")
	}
	uc.logger.Infow("sponsor login disclosed", "sponsor_id", id, "actor_id", caller.ActorID)
	return dto.ToSponsorLoginDTO(s), nil
}

func (uc *SponsorUseCase) Get(ctx context.Context, id uint) (*dto.SponsorDTO, error) {
	s, err := uc.sponsors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewNotFoundError("sponsor not found")
	}
	return dto.ToSponsorDTO(s), nil
}

func (uc *SponsorUseCase) Create(ctx context.Context, cmd SponsorCommand) (*dto.SponsorDTO, error) {
	s, err := sponsor.NewSponsor(cmd.Name, cmd.Login, cmd.Entities)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.sponsors.Create(ctx, s); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("sponsor name already exists")
		}
		uc.logger.Errorw("failed to create sponsor", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("sponsor created", "sponsor_id", s.ID(), "entities", s.EntityIDs())
	return dto.ToSponsorDTO(s), nil
}

func (uc *SponsorUseCase) Update(ctx context.Context, id uint, cmd SponsorCommand) (*dto.SponsorDTO, error) {
	s, err := uc.sponsors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewNotFoundError("sponsor not found")
	}
	if err := s.Edit(cmd.Name, cmd.Login, cmd.Entities); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.sponsors.Update(ctx, s); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("sponsor name already exists")
		}
		return nil, err
	}
	return dto.ToSponsorDTO(s), nil
}

func (uc *SponsorUseCase) Delete(ctx context.Context, ids []uint) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, errors.NewValidationError("ids are required")
	}
	n, err := uc.sponsors.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("sponsors deleted", "ids", ids, "deleted", n)
	return &BulkResult{Affected: n}, nil
}

func (uc *SponsorUseCase) SetStatus(ctx context.Context, cmd BulkStatusCommand) (*BulkResult, error) {
	status := sponsor.Status(cmd.Status)
	if !status.IsValid() {
		return nil, errors.NewValidationError("invalid sponsor status", cmd.Status)
	}
	if len(cmd.IDs) == 0 {
		return nil, errors.NewValidationError("ids are required")
	}
	n, err := uc.sponsors.UpdateStatus(ctx, cmd.IDs, status)
	if err != nil {
		return nil, err
	}
	return &BulkResult{Affected: n}, nil
}
