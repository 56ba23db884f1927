package usecases

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type UpdatePresenceCommand struct {
	ActorID uint
	Signal  directory.PresenceSignal
}

type PresenceResult struct {
	Activity directory.Activity `json:"activity"`
	Changed  bool               `json:"changed"`
}

// UpdatePresenceUseCase applies client presence signals to the stored
// activity. Only the stored state is changed; nothing is pushed to peers.
type UpdatePresenceUseCase struct {
	actors directory.Repository
	logger logger.Interface
}

func NewUpdatePresenceUseCase(actors directory.Repository, logger logger.Interface) *UpdatePresenceUseCase {
	return &UpdatePresenceUseCase{actors: actors, logger: logger}
}

func (uc *UpdatePresenceUseCase) Execute(ctx context.Context, cmd UpdatePresenceCommand) (*PresenceResult, error) {
	if cmd.ActorID == 0 {
		return nil, errors.NewForbiddenError("an actor account is required")
	}
	a, err := uc.actors.GetByID(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.NewNotFoundError("actor not found")
	}

	next := directory.NextActivity(a.Activity(), cmd.Signal)
	changed, err := a.SetActivity(next)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if changed {
		if err := uc.actors.UpdateActivity(ctx, a.ID(), next); err != nil {
			uc.logger.Errorw("failed to store activity", "actor_id", a.ID(), "error", err)
			return nil, err
		}
		uc.logger.Debugw("activity changed", "actor_id", a.ID(), "activity", next)
	}
	return &PresenceResult{Activity: next, Changed: changed}, nil
}

// MarkOffline runs when an actor's last connection closes.
func (uc *UpdatePresenceUseCase) MarkOffline(ctx context.Context, actorID uint) error {
	if err := uc.actors.UpdateActivity(ctx, actorID, directory.ActivityOffline); err != nil {
		uc.logger.Warnw("failed to mark actor offline", "actor_id", actorID, "error", err)
		return err
	}
	return nil
}
