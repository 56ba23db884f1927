// Package directory serves the caller's own actor record, presence and the
// instance's live connections.
package directory

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/directory/dto"
	"github.com/deskhub/deskhub/internal/application/directory/usecases"
	domain "github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type CurrentActorGetter interface {
	Execute(ctx context.Context, actorID uint) (*dto.ActorDTO, error)
}

type PresenceUpdater interface {
	Execute(ctx context.Context, cmd usecases.UpdatePresenceCommand) (*usecases.PresenceResult, error)
}

// ConnectionRegistry reports which actors hold a live websocket.
type ConnectionRegistry interface {
	IsOnline(actorID uint) bool
	OnlineActors() []uint
}

type OnlineQuery struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

type ConnectedResponse struct {
	ActorID   uint `json:"actor_id"`
	Connected bool `json:"connected"`
}

type ActivityRequest struct {
	Event    string `json:"event" validate:"omitempty,oneof=user-online user-away"`
	Activity string `json:"activity" validate:"omitempty,oneof=ONLINE OFFLINE AWAY"`
	Type     string `json:"type"`
}

type DirectoryHandler struct {
	current  CurrentActorGetter
	presence PresenceUpdater
	conns    ConnectionRegistry
	logger   logger.Interface
}

func NewDirectoryHandler(current CurrentActorGetter, presence PresenceUpdater, conns ConnectionRegistry, logger logger.Interface) *DirectoryHandler {
	return &DirectoryHandler{current: current, presence: presence, conns: conns, logger: logger}
}

// GetMe handles GET /actors/me
func (h *DirectoryHandler) GetMe(c *gin.Context) {
	caller := middleware.Caller(c)
	if caller.ActorID == 0 {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("an actor account is required"))
		return
	}

	result, err := h.current.Execute(c.Request.Context(), caller.ActorID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListOnline handles GET /actors/online?page=&size=
// Only connections on this instance are counted.
func (h *DirectoryHandler) ListOnline(c *gin.Context) {
	var q OnlineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid pagination"))
		return
	}
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.Size < 1 {
		q.Size = constants.DefaultPageSize
	}

	online := h.conns.OnlineActors()
	utils.ListSuccessResponse(c, utils.Paginate(online, q.Page, q.Size), int64(len(online)), q.Page, q.Size)
}

// Connected handles GET /actors/:id/connected
func (h *DirectoryHandler) Connected(c *gin.Context) {
	actorID, err := utils.ParseUintParam(c, "id", "actor")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ConnectedResponse{
		ActorID:   actorID,
		Connected: h.conns.IsOnline(actorID),
	})
}

// UpdateActivity handles PUT /actors/me/activity
func (h *DirectoryHandler) UpdateActivity(c *gin.Context) {
	var req ActivityRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.presence.Execute(c.Request.Context(), usecases.UpdatePresenceCommand{
		ActorID: middleware.Caller(c).ActorID,
		Signal: domain.PresenceSignal{
			Event:    req.Event,
			Activity: domain.Activity(req.Activity),
			Type:     req.Type,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
