package permission

import (
	"fmt"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/permission"
	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// DefaultPolicies are seeded on first start. Chefs and team leaders decide
// holidays and maintain the shift catalogue. Days off, sponsors, tools and
// the archive-wide ticket views are back-office only.
func DefaultPolicies() [][]string {
	return [][]string{
		{constants.RoleAdmin, permission.ResourceTicketAdmin, "*"},
		{constants.RoleAdmin, permission.ResourceDaysoff, "*"},
		{constants.RoleAdmin, permission.ResourceHolidayDecision, "*"},
		{constants.RoleAdmin, permission.ResourceSponsor, "*"},
		{constants.RoleAdmin, permission.ResourceTool, "*"},
		{constants.RoleAdmin, permission.ResourceShift, "*"},

		{directory.RoleChefEntity.String(), permission.ResourceHolidayDecision, permission.ActionWrite},
		{directory.RoleTeamLeader.String(), permission.ResourceHolidayDecision, permission.ActionWrite},
		{directory.RoleChefEntity.String(), permission.ResourceShift, permission.ActionWrite},
		{directory.RoleTeamLeader.String(), permission.ResourceShift, permission.ActionWrite},
	}
}

// InitDefaultPermissions adds the default policies that are missing.
// Policies edited by operators are kept.
func InitDefaultPermissions(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies() {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add default permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Info("default permissions initialized")
	return nil
}
