package visibility

import "github.com/deskhub/deskhub/internal/shared/utils/setutil"

// GrantedEntities lists the entities whose sponsors and tools s may use:
// access_entity when it is set, otherwise the actor's own entity. Admin
// scopes are unrestricted and callers check Admin first.
func (s Scope) GrantedEntities() []uint {
	if len(s.AccessEntity) > 0 {
		return s.AccessEntity
	}
	if s.EntityID != nil {
		return []uint{*s.EntityID}
	}
	return nil
}

// AllowsEntity reports whether a resource owned by entityID is usable by s.
// A resource without an entity is shared with everyone.
func (s Scope) AllowsEntity(entityID *uint) bool {
	if s.Admin {
		return true
	}
	if len(s.AccessEntity) > 0 {
		return s.entityGranted(entityID)
	}
	return entityID == nil || s.sameEntity(entityID)
}

// AllowsAnyEntity is AllowsEntity for resources attached to several
// entities. An empty list means the resource is shared.
func (s Scope) AllowsAnyEntity(entityIDs []uint) bool {
	if len(entityIDs) == 0 {
		return s.AllowsEntity(nil)
	}
	for i := range entityIDs {
		if s.AllowsEntity(&entityIDs[i]) {
			return true
		}
	}
	return false
}

// PlanningTeams narrows the teams requested on the planning to those s was
// granted. Without planning grants the request passes through. A non-nil
// empty result means none of the requested teams is readable.
func (s Scope) PlanningTeams(requested []uint) []uint {
	if s.Admin || len(s.AccessPlanningTeams) == 0 {
		return requested
	}
	if len(requested) == 0 {
		return append([]uint(nil), s.AccessPlanningTeams...)
	}
	granted := setutil.NewUintSet(s.AccessPlanningTeams...)
	out := make([]uint, 0, len(requested))
	for _, id := range requested {
		if granted.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
