package repository

import (
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// reachableActors selects the IDs of actors a chef or team leader reaches
// through the organisation: same entity (chef) or a granted team (leader),
// plus at least one shared department. It returns nil when the scope has no
// reach beyond its own items.
func reachableActors(tx *gorm.DB, s visibility.Scope) *gorm.DB {
	if len(s.DepartmentIDs) == 0 {
		return nil
	}

	sub := tx.Session(&gorm.Session{NewDB: true}).
		Table("actors").
		Select("DISTINCT actors.id").
		Joins("JOIN actor_departments ON actor_departments.actor_id = actors.id").
		Scopes(db.NotDeletedWithAlias("actors")).
		Where("actor_departments.department_id IN ?", s.DepartmentIDs)

	switch s.Role {
	case directory.RoleChefEntity:
		if s.EntityID == nil {
			return nil
		}
		return sub.Where("actors.entity_id = ?", *s.EntityID)
	case directory.RoleTeamLeader:
		if len(s.AccessTeam) == 0 {
			return nil
		}
		return sub.Where("actors.team_id IN ?", s.AccessTeam)
	default:
		return nil
	}
}

// ticketOwnersByTeam selects the authors a team leader reaches through
// access_team. Department is matched on the ticket itself.
func ticketOwnersByTeam(tx *gorm.DB, s visibility.Scope) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Table("actors").
		Select("actors.id").
		Scopes(db.NotDeletedWithAlias("actors")).
		Where("actors.team_id IN ?", s.AccessTeam)
}

// ticketScope restricts tickets to what s may see. Support agents see the
// entity-gated queue; everyone else sees their own tickets plus those their
// role reaches. Chefs match on the ticket's entity tag, not the author's.
func ticketScope(s visibility.Scope) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if s.Admin {
			return tx
		}
		tx = tx.Where("tickets.archived = ?", false)

		if s.IsSupport() {
			if len(s.AccessEntity) == 0 {
				return tx.Where("tickets.entity_id IS NULL")
			}
			return tx.Where("(tickets.entity_id IS NULL OR tickets.entity_id IN ?)", s.AccessEntity)
		}

		const own = "tickets.user_id = ? OR tickets.assigned_to = ?"
		switch {
		case len(s.DepartmentIDs) == 0:
		case s.Role == directory.RoleChefEntity && s.EntityID != nil:
			return tx.Where(
				"("+own+" OR (tickets.entity_id = ? AND tickets.departement_id IN ?))",
				s.ActorID, s.ActorID, *s.EntityID, s.DepartmentIDs,
			)
		case s.Role == directory.RoleTeamLeader && len(s.AccessTeam) > 0:
			return tx.Where(
				"("+own+" OR (tickets.departement_id IN ? AND tickets.user_id IN (?)))",
				s.ActorID, s.ActorID, s.DepartmentIDs, ticketOwnersByTeam(tx, s),
			)
		}
		return tx.Where("("+own+")", s.ActorID, s.ActorID)
	}
}

// supportAssignment keeps unassigned tickets and those assigned to assignee.
func supportAssignment(assignee uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("(tickets.assigned_to IS NULL OR tickets.assigned_to = ?)", assignee)
	}
}

func topicScope(s visibility.Scope) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if s.Admin {
			return tx
		}
		reached := reachableActors(tx, s)
		if reached == nil {
			return tx.Where("(topics.from_id = ? OR topics.to_id = ?)", s.ActorID, s.ActorID)
		}
		return tx.Where(
			"(topics.from_id = ? OR topics.to_id = ? OR topics.from_id IN (?) OR topics.to_id IN (?))",
			s.ActorID, s.ActorID, reached, reachableActors(tx, s),
		)
	}
}

func holidayScope(s visibility.Scope) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if s.Admin {
			return tx
		}
		reached := reachableActors(tx, s)
		if reached == nil {
			return tx.Where("holidays.user_id = ?", s.ActorID)
		}
		return tx.Where("(holidays.user_id = ? OR holidays.user_id IN (?))", s.ActorID, reached)
	}
}

// andConditions applies every condition.
func andConditions(conds []query.Condition) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, c := range conds {
			tx = tx.Where(conditionSQL(c), c.Value)
		}
		return tx
	}
}

// orConditions applies the conditions as one OR group. An empty group
// matches everything.
func orConditions(conds []query.Condition) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if len(conds) == 0 {
			return tx
		}
		group := tx.Session(&gorm.Session{NewDB: true})
		for i, c := range conds {
			if i == 0 {
				group = group.Where(conditionSQL(c), c.Value)
			} else {
				group = group.Or(conditionSQL(c), c.Value)
			}
		}
		return tx.Where(group)
	}
}

func conditionSQL(c query.Condition) string {
	if c.In {
		return c.Column + " IN ?"
	}
	return c.Column + " = ?"
}
