package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/tool/dto"
	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type ToolUseCase struct {
	tools  tool.Repository
	scopes *common.ScopeResolver
	logger logger.Interface
}

func NewToolUseCase(tools tool.Repository, scopes *common.ScopeResolver, logger logger.Interface) *ToolUseCase {
	return &ToolUseCase{tools: tools, scopes: scopes, logger: logger}
}

// List returns the active tools the caller's entities may use, shared
// tools included.
func (uc *ToolUseCase) List(ctx context.Context, caller common.Caller) ([]*dto.ToolDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	var filter []uint
	if !scope.Admin {
		filter = scope.GrantedEntities()
		if filter == nil {
			filter = []uint{}
		}
	}
	list, err := uc.tools.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToToolDTOs(list), nil
}

// ListByEntity is List narrowed to one entity the caller is granted.
func (uc *ToolUseCase) ListByEntity(ctx context.Context, caller common.Caller, entityID uint) ([]*dto.ToolDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsEntity(&entityID) {
		return nil, errors.NewForbiddenError("entity not granted")
	}
	list, err := uc.tools.ListActive(ctx, []uint{entityID})
	if err != nil {
		return nil, err
	}
	return dto.ToToolDTOs(list), nil
}

func (uc *ToolUseCase) Get(ctx context.Context, caller common.Caller, id uint) (*dto.ToolDTO, error) {
	scope, err := uc.scopes.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	t, err := uc.tools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !scope.AllowsEntity(t.EntityID()) {
		return nil, errors.NewNotFoundError("tool not found")
	}
	return dto.ToToolDTO(t), nil
}

func (uc *ToolUseCase) Create(ctx context.Context, spec tool.Spec) (*dto.ToolDTO, error) {
	t, err := tool.NewTool(spec)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tools.Create(ctx, t); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("tool key or name already exists")
		}
		uc.logger.Errorw("failed to create tool", "tool", spec.Tool, "error", err)
		return nil, err
	}
	uc.logger.Infow("tool created", "tool_id", t.ID(), "tool", spec.Tool)
	return dto.ToToolDTO(t), nil
}

// Update replaces the editable fields. An empty password keeps the stored
// one.
func (uc *ToolUseCase) Update(ctx context.Context, id uint, spec tool.Spec) (*dto.ToolDTO, error) {
	t, err := uc.tools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("tool not found")
	}
	if spec.Password == "" {
		spec.Password = t.Spec().Password
	}
	if err := t.Edit(spec); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.tools.Update(ctx, t); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("tool key or name already exists")
		}
		return nil, err
	}
	return dto.ToToolDTO(t), nil
}

func (uc *ToolUseCase) Delete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.NewValidationError("ids are required")
	}
	n, err := uc.tools.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	uc.logger.Infow("tools deleted", "ids", ids, "deleted", n)
	return n, nil
}
