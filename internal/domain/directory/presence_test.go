package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextActivity(t *testing.T) {
	tests := []struct {
		name    string
		current Activity
		signal  PresenceSignal
		want    Activity
	}{
		{"away event always wins", ActivityOnline, PresenceSignal{Event: PresenceEventAway}, ActivityAway},
		{"away event from offline", ActivityOffline, PresenceSignal{Event: PresenceEventAway, Type: "ping"}, ActivityAway},
		{"online with away activity", ActivityOnline, PresenceSignal{Event: PresenceEventOnline, Activity: ActivityAway}, ActivityAway},
		{"ping does not clear away", ActivityAway, PresenceSignal{Event: PresenceEventOnline, Activity: ActivityOnline, Type: "ping"}, ActivityAway},
		{"click clears away", ActivityAway, PresenceSignal{Event: PresenceEventOnline, Activity: ActivityOnline, Type: "click"}, ActivityOnline},
		{"ping from offline goes online", ActivityOffline, PresenceSignal{Event: PresenceEventOnline, Activity: ActivityOnline, Type: "ping"}, ActivityOnline},
		{"missing activity means online", ActivityOffline, PresenceSignal{Event: PresenceEventOnline}, ActivityOnline},
		{"unknown activity keeps state", ActivityOnline, PresenceSignal{Event: PresenceEventOnline, Activity: "BUSY", Type: "click"}, ActivityOnline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextActivity(tt.current, tt.signal))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("TEAMMEMBER")
	assert.NoError(t, err)
	assert.Equal(t, RoleTeamMember, r)

	r, err = ParseRole("ChefEntity")
	assert.NoError(t, err)
	assert.True(t, r.IsChefEntity())

	_, err = ParseRole("Director")
	assert.Error(t, err)
}

func TestActor_Balance(t *testing.T) {
	a, err := NewActor(ActorParams{Username: "u1", Role: RoleTeamMember, Solde: 2.5})
	assert.NoError(t, err)
	assert.Equal(t, UserTypeProd, a.UserType())

	a.Debit(4)
	assert.InDelta(t, -1.5, a.Solde(), 1e-9)
	a.Credit(4)
	assert.InDelta(t, 2.5, a.Solde(), 1e-9)
}

func TestNewActor_Validation(t *testing.T) {
	_, err := NewActor(ActorParams{Role: RoleTeamMember})
	assert.Error(t, err)

	_, err = NewActor(ActorParams{Username: "x", Role: "Boss"})
	assert.Error(t, err)

	_, err = NewActor(ActorParams{Username: "x", Role: RoleTeamLeader, UserType: "OPS"})
	assert.Error(t, err)
}
