// Package visibility decides which tickets, topics and holiday requests an
// actor may see. The same rules are rendered as SQL by the persistence layer.
package visibility

import (
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/utils/setutil"
)

// Scope is the directory view of a caller, resolved once per request.
type Scope struct {
	ActorID       uint
	Role          directory.Role
	UserType      directory.UserType
	EntityID      *uint
	TeamID        *uint
	DepartmentIDs []uint
	AccessTeam    []uint
	AccessEntity  []uint
	Admin         bool

	// AccessPlanningTeams narrows the shift planning the actor reads
	AccessPlanningTeams []uint
}

// ScopeFor derives the scope from the directory record. Override lists
// sent by clients are never consulted.
func ScopeFor(a *directory.Actor) Scope {
	return Scope{
		ActorID:       a.ID(),
		Role:          a.Role(),
		UserType:      a.UserType(),
		EntityID:      a.EntityID(),
		TeamID:        a.TeamID(),
		DepartmentIDs: a.DepartmentIDs(),
		AccessTeam:    a.AccessTeam(),
		AccessEntity:  a.AccessEntity(),

		AccessPlanningTeams: a.AccessPlanningTeams(),
	}
}

// AdminScope sees everything, archived tickets included.
func AdminScope(actorID uint) Scope {
	return Scope{ActorID: actorID, Admin: true}
}

func (s Scope) IsSupport() bool {
	return s.UserType.IsSupport()
}

// Party is the directory view of the counterpart of an item.
type Party struct {
	ID            uint
	EntityID      *uint
	TeamID        *uint
	DepartmentIDs []uint
}

func PartyOf(a *directory.Actor) Party {
	if a == nil {
		return Party{}
	}
	return Party{
		ID:            a.ID(),
		EntityID:      a.EntityID(),
		TeamID:        a.TeamID(),
		DepartmentIDs: a.DepartmentIDs(),
	}
}

// sharesDepartment reports whether any of ids is one of the scope's departments.
func (s Scope) sharesDepartment(ids ...uint) bool {
	return setutil.NewUintSet(s.DepartmentIDs...).Intersects(ids)
}

func (s Scope) sameEntity(entityID *uint) bool {
	return s.EntityID != nil && entityID != nil && *s.EntityID == *entityID
}

func (s Scope) teamGranted(teamID *uint) bool {
	return teamID != nil && setutil.NewUintSet(s.AccessTeam...).Has(*teamID)
}

func (s Scope) entityGranted(entityID *uint) bool {
	return entityID == nil || setutil.NewUintSet(s.AccessEntity...).Has(*entityID)
}

// reaches applies the role rule to a counterpart whose department set is
// departments: same entity for chefs, granted team for team leaders. Both
// also require a shared department.
func (s Scope) reaches(counterpart Party, departments []uint) bool {
	switch s.Role {
	case directory.RoleChefEntity:
		return s.sameEntity(counterpart.EntityID) && s.sharesDepartment(departments...)
	case directory.RoleTeamLeader:
		return s.teamGranted(counterpart.TeamID) && s.sharesDepartment(departments...)
	default:
		return false
	}
}
