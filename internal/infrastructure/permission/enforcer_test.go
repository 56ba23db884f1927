package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/permission"
	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	e, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, InitDefaultPermissions(e, logger.NewNop()))
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	cases := []struct {
		subject, resource, action string
		allowed                   bool
	}{
		{"admin", permission.ResourceTicketAdmin, permission.ActionRead, true},
		{"admin", permission.ResourceDaysoff, permission.ActionWrite, true},
		{"ChefEntity", permission.ResourceHolidayDecision, permission.ActionWrite, true},
		{"TeamLeader", permission.ResourceHolidayDecision, permission.ActionWrite, true},
		{"TeamMember", permission.ResourceHolidayDecision, permission.ActionWrite, false},
		{"ChefEntity", permission.ResourceDaysoff, permission.ActionWrite, false},
		{"ChefEntity", permission.ResourceTicketAdmin, permission.ActionRead, false},
		{"admin", permission.ResourceSponsor, permission.ActionWrite, true},
		{"admin", permission.ResourceTool, permission.ActionWrite, true},
		{"ChefEntity", permission.ResourceSponsor, permission.ActionWrite, false},
		{"TeamLeader", permission.ResourceShift, permission.ActionWrite, true},
		{"ChefEntity", permission.ResourceShift, permission.ActionWrite, true},
		{"TeamMember", permission.ResourceShift, permission.ActionWrite, false},
		{"TeamMember", permission.ResourceTool, permission.ActionWrite, false},
	}
	for _, tc := range cases {
		allowed, err := e.Enforce(tc.subject, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s %s", tc.subject, tc.resource, tc.action)
	}
}

func TestEnforcer_SeedIsIdempotentAndPersisted(t *testing.T) {
	e := newTestEnforcer(t)
	require.NoError(t, InitDefaultPermissions(e, logger.NewNop()))

	policies, err := e.Policies()
	require.NoError(t, err)
	assert.Len(t, policies, len(DefaultPolicies()))

	require.NoError(t, e.AddRoleInheritance("TeamMember", "TeamLeader"))
	require.NoError(t, e.LoadPolicy())
	allowed, err := e.Enforce("TeamMember", permission.ResourceHolidayDecision, permission.ActionWrite)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("TeamLeader", permission.ResourceHolidayDecision, permission.ActionWrite))
	allowed, err = e.Enforce("TeamMember", permission.ResourceHolidayDecision, permission.ActionWrite)
	require.NoError(t, err)
	assert.False(t, allowed)
}
