// Package common holds what every use-case package needs: the caller
// identity, scope resolution and the ports to side services.
package common

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/errors"
)

// Caller is the authenticated principal of a request. Admin callers are
// back-office accounts, not actors.
type Caller struct {
	ActorID uint
	Admin   bool

	// ConnID is set when the request came over a websocket connection
	ConnID string
}

// ActorFinder is the directory lookup the use cases need.
type ActorFinder interface {
	GetByID(ctx context.Context, id uint) (*directory.Actor, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error)
}

// ScopeResolver turns a caller into a visibility scope from the directory
// record, never from client-supplied access lists.
type ScopeResolver struct {
	actors ActorFinder
}

func NewScopeResolver(actors ActorFinder) *ScopeResolver {
	return &ScopeResolver{actors: actors}
}

func (r *ScopeResolver) Resolve(ctx context.Context, caller Caller) (visibility.Scope, error) {
	if caller.Admin {
		return visibility.AdminScope(caller.ActorID), nil
	}
	actor, err := r.actors.GetByID(ctx, caller.ActorID)
	if err != nil {
		return visibility.Scope{}, err
	}
	if actor == nil {
		return visibility.Scope{}, errors.NewUnauthorizedError("unknown actor")
	}
	return visibility.ScopeFor(actor), nil
}

// Party loads the directory view of actorID. An unknown actor yields a
// party with only the ID set.
func Party(ctx context.Context, actors ActorFinder, actorID uint) (visibility.Party, error) {
	a, err := actors.GetByID(ctx, actorID)
	if err != nil {
		return visibility.Party{}, err
	}
	if a == nil {
		return visibility.Party{ID: actorID}, nil
	}
	return visibility.PartyOf(a), nil
}
