package visibility

import "github.com/deskhub/deskhub/internal/domain/directory"

// Facts is an item that can be checked against a scope in memory.
type Facts interface {
	VisibleTo(s Scope) bool
}

// TicketFacts carries what the ticket rule needs. Owner is the ticket's
// author as resolved from the directory.
type TicketFacts struct {
	OwnerID      uint
	AssignedTo   *uint
	EntityID     *uint
	DepartmentID *uint
	Archived     bool
	Owner        Party
}

func (f TicketFacts) VisibleTo(s Scope) bool {
	return s.AllowsTicket(f)
}

type TopicFacts struct {
	From Party
	To   Party
}

func (f TopicFacts) VisibleTo(s Scope) bool {
	return s.AllowsTopic(f)
}

type HolidayFacts struct {
	Owner Party
}

func (f HolidayFacts) VisibleTo(s Scope) bool {
	return s.AllowsHoliday(f)
}

// AllowsTicket is the in-memory form of the ticket rule. Support agents
// work a queue gated by entity only; the query-level assigned_to gate is
// not part of it.
func (s Scope) AllowsTicket(f TicketFacts) bool {
	if s.Admin {
		return true
	}
	if f.Archived {
		return false
	}
	if s.IsSupport() {
		return s.entityGranted(f.EntityID)
	}
	if f.OwnerID == s.ActorID || (f.AssignedTo != nil && *f.AssignedTo == s.ActorID) {
		return true
	}
	if f.DepartmentID == nil {
		return false
	}
	switch s.Role {
	case directory.RoleChefEntity:
		// A ticket is tagged with its own entity, which may differ from its author's.
		return s.sameEntity(f.EntityID) && s.sharesDepartment(*f.DepartmentID)
	case directory.RoleTeamLeader:
		return s.teamGranted(f.Owner.TeamID) && s.sharesDepartment(*f.DepartmentID)
	default:
		return false
	}
}

func (s Scope) AllowsTopic(f TopicFacts) bool {
	if s.Admin {
		return true
	}
	if f.From.ID == s.ActorID || f.To.ID == s.ActorID {
		return true
	}
	return s.reaches(f.From, f.From.DepartmentIDs) || s.reaches(f.To, f.To.DepartmentIDs)
}

func (s Scope) AllowsHoliday(f HolidayFacts) bool {
	if s.Admin {
		return true
	}
	if f.Owner.ID == s.ActorID {
		return true
	}
	return s.reaches(f.Owner, f.Owner.DepartmentIDs)
}
