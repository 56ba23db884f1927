// Package realtime serves the client websocket and dispatches client events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/deskhub/deskhub/internal/application/common"
	directoryUsecases "github.com/deskhub/deskhub/internal/application/directory/usecases"
	holidayUsecases "github.com/deskhub/deskhub/internal/application/holiday/usecases"
	ticketDto "github.com/deskhub/deskhub/internal/application/ticket/dto"
	ticketUsecases "github.com/deskhub/deskhub/internal/application/ticket/usecases"
	topicDto "github.com/deskhub/deskhub/internal/application/topic/dto"
	topicUsecases "github.com/deskhub/deskhub/internal/application/topic/usecases"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/services"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536

	// eventError is sent back to the sender when a client event fails.
	eventError = "error"
)

type ConnHub interface {
	Register(actorID uint, scope visibility.Scope, conn *websocket.Conn) *services.HubConn
	Unregister(c *services.HubConn)
	Publish(e events.Event)
	SendTo(c *services.HubConn, e events.Event) error
}

type ScopeResolver interface {
	Resolve(ctx context.Context, caller common.Caller) (visibility.Scope, error)
}

type MessagePoster interface {
	Execute(ctx context.Context, cmd ticketUsecases.PostMessageCommand) (*ticketDto.MessageDTO, error)
}

type ConversationSender interface {
	Execute(ctx context.Context, cmd topicUsecases.SendConversationCommand) (*topicDto.ConversationDTO, error)
}

type TicketAnnouncer interface {
	Execute(ctx context.Context, cmd ticketUsecases.AnnounceTicketCommand) (int, error)
}

type HolidayAnnouncer interface {
	Execute(ctx context.Context, cmd holidayUsecases.AnnounceHolidayCommand) error
}

type PresenceUpdater interface {
	Execute(ctx context.Context, cmd directoryUsecases.UpdatePresenceCommand) (*directoryUsecases.PresenceResult, error)
}

type UseCases struct {
	PostMessage      MessagePoster
	SendConversation ConversationSender
	AnnounceTicket   TicketAnnouncer
	AnnounceHoliday  HolidayAnnouncer
	Presence         PresenceUpdater
}

// clientMessage is the {"event","data"} envelope sent by clients.
type clientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type createMessagePayload struct {
	Ticket  uint   `json:"ticket"`
	Message string `json:"message"`
}

type sendMessagePayload struct {
	Topic uint   `json:"topic"`
	Msg   string `json:"msg"`
}

type presencePayload struct {
	Activity directory.Activity `json:"activity"`
	Type     string             `json:"type"`
}

type complainSeenPayload struct {
	ComplaintID uint `json:"complaintId"`
	UserID      uint `json:"userId"`
}

// HubHandler handles client WebSocket connections.
type HubHandler struct {
	hub      ConnHub
	scopes   ScopeResolver
	uc       UseCases
	upgrader websocket.Upgrader
	logger   logger.Interface
}

// NewHubHandler creates a HubHandler. An empty origins list, or one
// containing "*", accepts any origin.
func NewHubHandler(hub ConnHub, scopes ScopeResolver, uc UseCases, origins []string, log logger.Interface) *HubHandler {
	return &HubHandler{
		hub:    hub,
		scopes: scopes,
		uc:     uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		logger: log,
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// ClientWS handles GET /ws
func (h *HubHandler) ClientWS(c *gin.Context) {
	caller := middleware.Caller(c)
	if caller.ActorID == 0 && !caller.Admin {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	scope, err := h.scopes.Resolve(c.Request.Context(), caller)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("failed to upgrade to websocket",
			"error", err,
			"actor_id", caller.ActorID,
			"ip", c.ClientIP(),
		)
		return
	}

	hc := h.hub.Register(caller.ActorID, scope, conn)
	caller.ConnID = hc.ID

	go h.writePump(hc)
	h.readPump(hc, caller)
}

func (h *HubHandler) readPump(hc *services.HubConn, caller common.Caller) {
	defer func() {
		h.hub.Unregister(hc)
		hc.Conn.Close()
	}()

	hc.Conn.SetReadLimit(maxMessageSize)
	hc.Conn.SetReadDeadline(time.Now().Add(pongWait))
	hc.Conn.SetPongHandler(func(string) error {
		hc.Touch()
		hc.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := hc.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("client websocket read error",
					"error", err,
					"actor_id", hc.ActorID,
					"conn_id", hc.ID,
				)
			}
			return
		}
		hc.Touch()

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warnw("failed to parse client message",
				"error", err,
				"actor_id", hc.ActorID,
			)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err = h.Dispatch(ctx, hc, caller, msg.Event, msg.Data)
		cancel()
		if err != nil {
			h.logger.Warnw("client event failed",
				"event", msg.Event,
				"actor_id", hc.ActorID,
				"error", err,
			)
			_ = h.hub.SendTo(hc, events.New(eventError, map[string]string{
				"event":   msg.Event,
				"message": err.Error(),
			}))
		}
	}
}

func (h *HubHandler) writePump(hc *services.HubConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hc.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-hc.Send:
			hc.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				hc.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := hc.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Warnw("failed to write to client websocket",
					"error", err,
					"actor_id", hc.ActorID,
					"conn_id", hc.ID,
				)
				return
			}

		case <-ticker.C:
			hc.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := hc.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Dispatch runs one client event on behalf of the connection hc.
func (h *HubHandler) Dispatch(ctx context.Context, hc *services.HubConn, caller common.Caller, event string, data json.RawMessage) error {
	switch event {
	case events.ClientCreateMessage:
		var p createMessagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		if _, err := h.uc.PostMessage.Execute(ctx, ticketUsecases.PostMessageCommand{
			Caller:   caller,
			TicketID: p.Ticket,
			Body:     p.Message,
		}); err != nil {
			return err
		}
		return h.hub.SendTo(hc, events.New(events.TicketMessageSent, nil))

	case events.ClientSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		if _, err := h.uc.SendConversation.Execute(ctx, topicUsecases.SendConversationCommand{
			Caller:  caller,
			TopicID: p.Topic,
			Msg:     p.Msg,
		}); err != nil {
			return err
		}
		return h.hub.SendTo(hc, events.New(events.MessageSent, nil))

	case events.ClientCreateTicket, events.ClientForwardTicket, events.ClientUpdatedTicket, events.ClientBulkUpdatedTicket:
		ids, err := decodeIDs(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		_, err = h.uc.AnnounceTicket.Execute(ctx, ticketUsecases.AnnounceTicketCommand{
			Caller:    caller,
			Event:     event,
			TicketIDs: ids,
		})
		return err

	case events.ClientRequestCreated, events.ClientRequestCreatedProd, events.ClientRequestCreatedTech:
		var id uint
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.uc.AnnounceHoliday.Execute(ctx, holidayUsecases.AnnounceHolidayCommand{
			Caller:    caller,
			Event:     event,
			HolidayID: id,
		})

	case events.ClientUserOnline, events.ClientUserAway:
		var p presencePayload
		if len(data) > 0 {
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("decode %s: %w", event, err)
			}
		}
		// the actor comes from the token, never from a client userId
		_, err := h.uc.Presence.Execute(ctx, directoryUsecases.UpdatePresenceCommand{
			ActorID: caller.ActorID,
			Signal: directory.PresenceSignal{
				Event:    event,
				Activity: p.Activity,
				Type:     p.Type,
			},
		})
		return err

	case events.ClientComplainCreatedByUser:
		h.hub.Publish(events.New(events.ComplainCreated, data).From(hc.ID))
		return nil

	case events.ClientComplainAdminsSeen:
		var p complainSeenPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		h.hub.Publish(events.New(events.ComplainSeen("prod", p.UserID, p.ComplaintID), data).From(hc.ID))
		h.hub.Publish(events.New(events.ComplainSeen("tech", p.UserID, p.ComplaintID), data).From(hc.ID))
		return nil
	}

	return fmt.Errorf("unknown event %q", event)
}

// decodeIDs accepts a single ID or a list of IDs.
func decodeIDs(data json.RawMessage) ([]uint, error) {
	var id uint
	if err := json.Unmarshal(data, &id); err == nil {
		return []uint{id}, nil
	}
	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
