package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/application/directory/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/errors"
)

type GetCurrentActorUseCase struct {
	actors directory.Repository
}

func NewGetCurrentActorUseCase(actors directory.Repository) *GetCurrentActorUseCase {
	return &GetCurrentActorUseCase{actors: actors}
}

func (uc *GetCurrentActorUseCase) Execute(ctx context.Context, actorID uint) (*dto.ActorDTO, error) {
	if actorID == 0 {
		return nil, errors.NewForbiddenError("an actor account is required")
	}
	a, err := uc.actors.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.NewNotFoundError("actor not found")
	}
	return dto.ToActorDTO(a), nil
}
