package mappers

import (
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

// ActorToModel converts an actor to its row. Departments are stored
// separately in actor_departments.
func ActorToModel(a *directory.Actor) *models.ActorModel {
	return &models.ActorModel{
		ID:                  a.ID(),
		Name:                a.Name(),
		Username:            a.Username(),
		PasswordHash:        a.PasswordHash(),
		Role:                a.Role().String(),
		UserType:            a.UserType().String(),
		TeamID:              a.TeamID(),
		EntityID:            a.EntityID(),
		AccessTeam:          a.AccessTeam(),
		AccessEntity:        a.AccessEntity(),
		AccessPlanningTeams: a.AccessPlanningTeams(),
		Solde:               a.Solde(),
		Activity:            a.Activity().String(),
		Status:              a.Status(),
		Visible:             a.Visible(),
		CreatedAt:           a.CreatedAt(),
		UpdatedAt:           a.UpdatedAt(),
	}
}

// ActorToDomain rebuilds an actor from its row and department IDs.
func ActorToDomain(m *models.ActorModel, departmentIDs []uint) (*directory.Actor, error) {
	role, err := directory.ParseRole(m.Role)
	if err != nil {
		return nil, err
	}
	return directory.ReconstructActor(m.ID, directory.ActorParams{
		Name:                m.Name,
		Username:            m.Username,
		Role:                role,
		UserType:            directory.UserType(m.UserType),
		TeamID:              m.TeamID,
		EntityID:            m.EntityID,
		DepartmentIDs:       departmentIDs,
		AccessTeam:          m.AccessTeam,
		AccessEntity:        m.AccessEntity,
		AccessPlanningTeams: m.AccessPlanningTeams,
		Solde:               m.Solde,
	}, directory.Activity(m.Activity), m.Status, m.Visible, m.PasswordHash, m.CreatedAt, m.UpdatedAt)
}
