package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/visibility"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "messageCreated-12", MessageCreated(12))
	assert.Equal(t, "messageConv-12", MessageConv(12))
	assert.Equal(t, "ticket-updated-3", TicketUpdated(3))
	assert.Equal(t, "complainSeen-tech-4-9", ComplainSeen("tech", 4, 9))

	name, ok := HolidayCreatedFor(ClientRequestCreatedProd)
	assert.True(t, ok)
	assert.Equal(t, "holiday-created-prod", name)
	_, ok = HolidayCreatedFor("unknown")
	assert.False(t, ok)
}

func TestEvent_Frame(t *testing.T) {
	frame, err := New(TicketUpdated(7), "Closed").From("c1").Frame()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"ticket-updated-7","data":"Closed"}`, string(frame))
}

func TestAudience_Allows(t *testing.T) {
	member := visibility.Scope{ActorID: 1, Role: directory.RoleTeamMember}

	var none *Audience
	assert.True(t, none.Allows(member))
	assert.True(t, (&Audience{}).Allows(member))

	own := &Audience{Ticket: &visibility.TicketFacts{OwnerID: 1}}
	other := &Audience{Ticket: &visibility.TicketFacts{OwnerID: 2}}
	assert.True(t, own.Allows(member))
	assert.False(t, other.Allows(member))

	topic := &Audience{Topic: &visibility.TopicFacts{From: visibility.Party{ID: 2}, To: visibility.Party{ID: 1}}}
	assert.True(t, topic.Allows(member))
}
