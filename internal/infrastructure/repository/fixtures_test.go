package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/topic"
	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

const (
	entityE1 uint = 1
	entityE2 uint = 2
	deptD1   uint = 10
	deptD2   uint = 20
	teamTm1  uint = 100
	teamTm2  uint = 200
)

func uintPtr(v uint) *uint {
	return &v
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := database.Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// org is a small directory: a member and two chefs sharing a department
// across two entities, a team leader granted the member's team, and a
// support agent granted entity E1.
type org struct {
	member  *directory.Actor
	chefE1  *directory.Actor
	chefE2  *directory.Actor
	leader  *directory.Actor
	support *directory.Actor
	outside *directory.Actor
}

func seedOrg(t *testing.T, gdb *gorm.DB) org {
	t.Helper()
	repo := NewActorRepository(gdb, logger.NewNop())
	mk := func(p directory.ActorParams) *directory.Actor {
		a, err := directory.NewActor(p)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), a))
		return a
	}
	return org{
		member: mk(directory.ActorParams{Username: "u1", Role: directory.RoleTeamMember,
			EntityID: uintPtr(entityE1), TeamID: uintPtr(teamTm1), DepartmentIDs: []uint{deptD1}}),
		chefE1: mk(directory.ActorParams{Username: "u2", Role: directory.RoleChefEntity,
			EntityID: uintPtr(entityE1), DepartmentIDs: []uint{deptD1}}),
		chefE2: mk(directory.ActorParams{Username: "u3", Role: directory.RoleChefEntity,
			EntityID: uintPtr(entityE2), DepartmentIDs: []uint{deptD1}}),
		leader: mk(directory.ActorParams{Username: "lead", Role: directory.RoleTeamLeader,
			TeamID: uintPtr(teamTm2), AccessTeam: []uint{teamTm1}, DepartmentIDs: []uint{deptD1}}),
		support: mk(directory.ActorParams{Username: "sup", Role: directory.RoleTeamMember,
			UserType: directory.UserTypeSupport, AccessEntity: []uint{entityE1}}),
		outside: mk(directory.ActorParams{Username: "other", Role: directory.RoleTeamMember,
			EntityID: uintPtr(entityE2), TeamID: uintPtr(teamTm2), DepartmentIDs: []uint{deptD2}}),
	}
}

func (o org) all() []*directory.Actor {
	return []*directory.Actor{o.member, o.chefE1, o.chefE2, o.leader, o.support, o.outside}
}

func createTicket(t *testing.T, gdb *gorm.DB, owner *directory.Actor, subject string, routing ticket.Routing) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(owner.ID(), ticket.Content{Subject: subject, Severity: vo.SeverityMinor}, routing)
	require.NoError(t, err)
	require.NoError(t, NewTicketRepository(gdb, logger.NewNop()).Create(context.Background(), tk))
	return tk
}

func postMessage(t *testing.T, gdb *gorm.DB, tk *ticket.Ticket, author *directory.Actor, body string) *ticket.Message {
	t.Helper()
	m, err := ticket.NewMessage(tk.ID(), author.ID(), body)
	require.NoError(t, err)
	require.NoError(t, NewMessageRepository(gdb).Create(context.Background(), m))
	return m
}

func createTopic(t *testing.T, gdb *gorm.DB, from, to *directory.Actor, subject string) *topic.Topic {
	t.Helper()
	tp, err := topic.NewTopic(from.ID(), to.ID(), subject)
	require.NoError(t, err)
	require.NoError(t, NewTopicRepository(gdb).Create(context.Background(), tp))
	return tp
}

func sendConversation(t *testing.T, gdb *gorm.DB, tp *topic.Topic, from, to *directory.Actor, msg string) *topic.Conversation {
	t.Helper()
	c, err := topic.NewConversation(tp.ID(), from.ID(), to.ID(), msg)
	require.NoError(t, err)
	require.NoError(t, NewConversationRepository(gdb).Create(context.Background(), c))
	return c
}
