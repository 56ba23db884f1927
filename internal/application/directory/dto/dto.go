package dto

import "github.com/deskhub/deskhub/internal/domain/directory"

type ActorDTO struct {
	ID                  uint    `json:"id"`
	Name                string  `json:"name"`
	Username            string  `json:"username"`
	Role                string  `json:"role"`
	UserType            string  `json:"type_user"`
	TeamID              *uint   `json:"team"`
	EntityID            *uint   `json:"entity"`
	DepartmentIDs       []uint  `json:"departements"`
	AccessTeam          []uint  `json:"access_team"`
	AccessEntity        []uint  `json:"access_entity"`
	AccessPlanningTeams []uint  `json:"access_planning_teams"`
	Solde               float64 `json:"solde"`
	Activity            string  `json:"activity"`
	Status              string  `json:"status"`
}

func ToActorDTO(a *directory.Actor) *ActorDTO {
	if a == nil {
		return nil
	}
	return &ActorDTO{
		ID:                  a.ID(),
		Name:                a.Name(),
		Username:            a.Username(),
		Role:                a.Role().String(),
		UserType:            a.UserType().String(),
		TeamID:              a.TeamID(),
		EntityID:            a.EntityID(),
		DepartmentIDs:       nonNil(a.DepartmentIDs()),
		AccessTeam:          nonNil(a.AccessTeam()),
		AccessEntity:        nonNil(a.AccessEntity()),
		AccessPlanningTeams: nonNil(a.AccessPlanningTeams()),
		Solde:               a.Solde(),
		Activity:            a.Activity().String(),
		Status:              a.Status(),
	}
}

func nonNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
