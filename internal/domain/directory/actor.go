// Package directory holds the actor graph: role, user type, team, entity,
// departments and the override lists that widen visibility.
package directory

import (
	"fmt"
	"time"
)

type Actor struct {
	id                  uint
	name                string
	username            string
	role                Role
	userType            UserType
	teamID              *uint
	entityID            *uint
	departmentIDs       []uint
	accessTeam          []uint
	accessEntity        []uint
	accessPlanningTeams []uint
	solde               float64
	activity            Activity
	status              string
	visible             bool
	passwordHash        string
	createdAt           time.Time
	updatedAt           time.Time
}

// ActorParams carries the mutable profile fields of an actor.
type ActorParams struct {
	Name                string
	Username            string
	Role                Role
	UserType            UserType
	TeamID              *uint
	EntityID            *uint
	DepartmentIDs       []uint
	AccessTeam          []uint
	AccessEntity        []uint
	AccessPlanningTeams []uint
	Solde               float64
}

func NewActor(p ActorParams) (*Actor, error) {
	if p.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !p.Role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", p.Role)
	}
	if p.UserType == "" {
		p.UserType = UserTypeProd
	}
	if !p.UserType.IsValid() {
		return nil, fmt.Errorf("invalid user type: %s", p.UserType)
	}

	now := time.Now().UTC()
	return &Actor{
		name:                p.Name,
		username:            p.Username,
		role:                p.Role,
		userType:            p.UserType,
		teamID:              p.TeamID,
		entityID:            p.EntityID,
		departmentIDs:       cloneIDs(p.DepartmentIDs),
		accessTeam:          cloneIDs(p.AccessTeam),
		accessEntity:        cloneIDs(p.AccessEntity),
		accessPlanningTeams: cloneIDs(p.AccessPlanningTeams),
		solde:               p.Solde,
		activity:            ActivityOffline,
		status:              "active",
		visible:             true,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// ReconstructActor rebuilds an actor from persistence without validation
// beyond identity.
func ReconstructActor(
	id uint,
	p ActorParams,
	activity Activity,
	status string,
	visible bool,
	passwordHash string,
	createdAt, updatedAt time.Time,
) (*Actor, error) {
	if id == 0 {
		return nil, fmt.Errorf("actor ID cannot be zero")
	}
	return &Actor{
		id:                  id,
		name:                p.Name,
		username:            p.Username,
		role:                p.Role,
		userType:            p.UserType,
		teamID:              p.TeamID,
		entityID:            p.EntityID,
		departmentIDs:       cloneIDs(p.DepartmentIDs),
		accessTeam:          cloneIDs(p.AccessTeam),
		accessEntity:        cloneIDs(p.AccessEntity),
		accessPlanningTeams: cloneIDs(p.AccessPlanningTeams),
		solde:               p.Solde,
		activity:            activity,
		status:              status,
		visible:             visible,
		passwordHash:        passwordHash,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (a *Actor) ID() uint                    { return a.id }
func (a *Actor) Name() string                { return a.name }
func (a *Actor) Username() string            { return a.username }
func (a *Actor) Role() Role                  { return a.role }
func (a *Actor) UserType() UserType          { return a.userType }
func (a *Actor) TeamID() *uint               { return a.teamID }
func (a *Actor) EntityID() *uint             { return a.entityID }
func (a *Actor) DepartmentIDs() []uint       { return cloneIDs(a.departmentIDs) }
func (a *Actor) AccessTeam() []uint          { return cloneIDs(a.accessTeam) }
func (a *Actor) AccessEntity() []uint        { return cloneIDs(a.accessEntity) }
func (a *Actor) AccessPlanningTeams() []uint { return cloneIDs(a.accessPlanningTeams) }
func (a *Actor) Solde() float64              { return a.solde }
func (a *Actor) Activity() Activity          { return a.activity }
func (a *Actor) Status() string              { return a.status }
func (a *Actor) Visible() bool               { return a.visible }
func (a *Actor) PasswordHash() string        { return a.passwordHash }
func (a *Actor) CreatedAt() time.Time        { return a.createdAt }
func (a *Actor) UpdatedAt() time.Time        { return a.updatedAt }

func (a *Actor) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("actor ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("actor ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Actor) SetPasswordHash(hash string) {
	a.passwordHash = hash
	a.updatedAt = time.Now().UTC()
}

// Debit removes days from the balance. No floor is applied.
func (a *Actor) Debit(days float64) {
	a.solde -= days
	a.updatedAt = time.Now().UTC()
}

func (a *Actor) Credit(days float64) {
	a.solde += days
	a.updatedAt = time.Now().UTC()
}

// SetActivity returns true when the state actually changed.
func (a *Actor) SetActivity(activity Activity) (bool, error) {
	if !activity.IsValid() {
		return false, fmt.Errorf("invalid activity: %s", activity)
	}
	if a.activity == activity {
		return false, nil
	}
	a.activity = activity
	a.updatedAt = time.Now().UTC()
	return true, nil
}

func (a *Actor) IsSupport() bool {
	return a.userType.IsSupport()
}

func cloneIDs(ids []uint) []uint {
	if ids == nil {
		return nil
	}
	out := make([]uint, len(ids))
	copy(out, ids)
	return out
}
