package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/application/common"
	directoryUsecases "github.com/deskhub/deskhub/internal/application/directory/usecases"
	holidayUsecases "github.com/deskhub/deskhub/internal/application/holiday/usecases"
	ticketDto "github.com/deskhub/deskhub/internal/application/ticket/dto"
	ticketUsecases "github.com/deskhub/deskhub/internal/application/ticket/usecases"
	topicDto "github.com/deskhub/deskhub/internal/application/topic/dto"
	topicUsecases "github.com/deskhub/deskhub/internal/application/topic/usecases"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/services"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/config"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type stubScopes struct{}

func (stubScopes) Resolve(ctx context.Context, caller common.Caller) (visibility.Scope, error) {
	return visibility.Scope{ActorID: caller.ActorID, Role: directory.RoleTeamMember}, nil
}

type stubPoster struct {
	got *ticketUsecases.PostMessageCommand
}

func (s *stubPoster) Execute(ctx context.Context, cmd ticketUsecases.PostMessageCommand) (*ticketDto.MessageDTO, error) {
	s.got = &cmd
	if cmd.TicketID == 404 {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	return &ticketDto.MessageDTO{ID: 1, TicketID: cmd.TicketID, Body: cmd.Body}, nil
}

type stubSender struct {
	got *topicUsecases.SendConversationCommand
}

func (s *stubSender) Execute(ctx context.Context, cmd topicUsecases.SendConversationCommand) (*topicDto.ConversationDTO, error) {
	s.got = &cmd
	return &topicDto.ConversationDTO{}, nil
}

type stubTicketAnnouncer struct {
	got *ticketUsecases.AnnounceTicketCommand
}

func (s *stubTicketAnnouncer) Execute(ctx context.Context, cmd ticketUsecases.AnnounceTicketCommand) (int, error) {
	s.got = &cmd
	return len(cmd.TicketIDs), nil
}

type stubHolidayAnnouncer struct {
	got *holidayUsecases.AnnounceHolidayCommand
}

func (s *stubHolidayAnnouncer) Execute(ctx context.Context, cmd holidayUsecases.AnnounceHolidayCommand) error {
	s.got = &cmd
	return nil
}

type stubPresence struct {
	got *directoryUsecases.UpdatePresenceCommand
}

func (s *stubPresence) Execute(ctx context.Context, cmd directoryUsecases.UpdatePresenceCommand) (*directoryUsecases.PresenceResult, error) {
	s.got = &cmd
	return &directoryUsecases.PresenceResult{Activity: directory.ActivityAway, Changed: true}, nil
}

type fixture struct {
	hub      *services.Hub
	handler  *HubHandler
	poster   *stubPoster
	sender   *stubSender
	tickets  *stubTicketAnnouncer
	holidays *stubHolidayAnnouncer
	presence *stubPresence
}

func newFixture() *fixture {
	f := &fixture{
		hub:      services.NewHub(config.DeliveryBroadcast, 8, logger.NewNop()),
		poster:   &stubPoster{},
		sender:   &stubSender{},
		tickets:  &stubTicketAnnouncer{},
		holidays: &stubHolidayAnnouncer{},
		presence: &stubPresence{},
	}
	f.handler = NewHubHandler(f.hub, stubScopes{}, UseCases{
		PostMessage:      f.poster,
		SendConversation: f.sender,
		AnnounceTicket:   f.tickets,
		AnnounceHoliday:  f.holidays,
		Presence:         f.presence,
	}, nil, logger.NewNop())
	return f
}

func eventNames(c *services.HubConn) []string {
	var names []string
	for {
		select {
		case frame := <-c.Send:
			var env struct {
				Event string `json:"event"`
			}
			_ = json.Unmarshal(frame, &env)
			names = append(names, env.Event)
		default:
			return names
		}
	}
}

func TestDispatch_CreateMessage(t *testing.T) {
	f := newFixture()
	hc := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	caller := common.Caller{ActorID: 5, ConnID: hc.ID}

	err := f.handler.Dispatch(context.Background(), hc, caller, "createMessage", json.RawMessage(`{"ticket":9,"user":99,"message":"hello"}`))
	require.NoError(t, err)

	require.NotNil(t, f.poster.got)
	assert.Equal(t, uint(9), f.poster.got.TicketID)
	assert.Equal(t, uint(5), f.poster.got.Caller.ActorID)
	assert.Equal(t, hc.ID, f.poster.got.Caller.ConnID)
	assert.Equal(t, []string{"ticket:message:sent"}, eventNames(hc))

	err = f.handler.Dispatch(context.Background(), hc, caller, "createMessage", json.RawMessage(`{"ticket":404,"message":"x"}`))
	assert.Error(t, err)
	assert.Empty(t, eventNames(hc))
}

func TestDispatch_SendMessage(t *testing.T) {
	f := newFixture()
	hc := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)

	err := f.handler.Dispatch(context.Background(), hc, common.Caller{ActorID: 5, ConnID: hc.ID}, "send:message", json.RawMessage(`{"topic":3,"msg":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, uint(3), f.sender.got.TopicID)
	assert.Equal(t, "hi", f.sender.got.Msg)
	assert.Equal(t, []string{"message:sent"}, eventNames(hc))
}

func TestDispatch_Announcements(t *testing.T) {
	f := newFixture()
	hc := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	caller := common.Caller{ActorID: 5, ConnID: hc.ID}

	require.NoError(t, f.handler.Dispatch(context.Background(), hc, caller, "updatedTicket", json.RawMessage(`12`)))
	assert.Equal(t, []uint{12}, f.tickets.got.TicketIDs)
	assert.Equal(t, "updatedTicket", f.tickets.got.Event)

	require.NoError(t, f.handler.Dispatch(context.Background(), hc, caller, "bulkUpdatedTicket", json.RawMessage(`[1,2]`)))
	assert.Equal(t, []uint{1, 2}, f.tickets.got.TicketIDs)

	require.NoError(t, f.handler.Dispatch(context.Background(), hc, caller, "requestCreatedProd", json.RawMessage(`4`)))
	assert.Equal(t, uint(4), f.holidays.got.HolidayID)
	assert.Equal(t, "requestCreatedProd", f.holidays.got.Event)

	assert.Error(t, f.handler.Dispatch(context.Background(), hc, caller, "createTicket", json.RawMessage(`"abc"`)))
}

func TestDispatch_PresenceUsesAuthenticatedActor(t *testing.T) {
	f := newFixture()
	hc := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)

	err := f.handler.Dispatch(context.Background(), hc, common.Caller{ActorID: 5}, "user-away", json.RawMessage(`{"userId":77,"activity":"AWAY"}`))
	require.NoError(t, err)
	assert.Equal(t, uint(5), f.presence.got.ActorID)
	assert.Equal(t, "user-away", f.presence.got.Signal.Event)
	assert.Equal(t, directory.ActivityAway, f.presence.got.Signal.Activity)
}

func TestDispatch_Complaints(t *testing.T) {
	f := newFixture()
	sender := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	admin := f.hub.Register(1, visibility.AdminScope(1), nil)

	require.NoError(t, f.handler.Dispatch(context.Background(), sender, common.Caller{ActorID: 5}, "complainCreatedByUser", json.RawMessage(`{"id":8}`)))
	require.NoError(t, f.handler.Dispatch(context.Background(), sender, common.Caller{ActorID: 5}, "complainAdminsSeen", json.RawMessage(`{"complaintId":8,"userId":5}`)))

	assert.Empty(t, eventNames(sender))
	assert.Equal(t, []string{"complainCreated", "complainSeen-prod-5-8", "complainSeen-tech-5-8"}, eventNames(admin))
}

func TestDispatch_UnknownEvent(t *testing.T) {
	f := newFixture()
	hc := f.hub.Register(5, visibility.Scope{ActorID: 5}, nil)
	assert.Error(t, f.handler.Dispatch(context.Background(), hc, common.Caller{ActorID: 5}, "dropTables", nil))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://desk.example.com"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://desk.example.com")
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))

	assert.True(t, originChecker([]string{"*"})(r))
}

func TestClientWS_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture()

	var next atomic.Uint32
	next.Store(4)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		middleware.SetCaller(c, uint(next.Add(1)), "TeamMember")
	}, f.handler.ClientWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	a, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer a.Close()
	b, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer b.Close()

	require.Eventually(t, func() bool { return len(f.hub.OnlineActors()) == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteJSON(map[string]any{"event": "complainCreatedByUser", "data": map[string]int{"id": 8}}))

	_ = b.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, b.ReadJSON(&env))
	assert.Equal(t, "complainCreated", env.Event)
	assert.JSONEq(t, `{"id":8}`, string(env.Data))

	require.NoError(t, a.WriteJSON(map[string]any{"event": "createMessage", "data": map[string]any{"ticket": 9, "message": "hello"}}))
	_ = a.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, a.ReadJSON(&env))
	assert.Equal(t, "ticket:message:sent", env.Event)

	a.Close()
	require.Eventually(t, func() bool { return !f.hub.IsOnline(5) }, time.Second, 10*time.Millisecond)
}
