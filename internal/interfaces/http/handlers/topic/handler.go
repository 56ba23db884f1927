// Package topic serves the direct-conversation endpoints.
package topic

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/topic/dto"
	"github.com/deskhub/deskhub/internal/application/topic/usecases"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type TopicLister interface {
	Execute(ctx context.Context, q usecases.ListTopicsQuery) (*dto.TopicListDTO, error)
	Search(ctx context.Context, q usecases.SearchTopicsQuery) ([]*dto.TopicDTO, error)
}

type TopicCreator interface {
	Execute(ctx context.Context, cmd usecases.CreateTopicCommand) (*dto.TopicDTO, error)
}

type TopicStatusUpdater interface {
	Execute(ctx context.Context, cmd usecases.UpdateTopicStatusCommand) (*dto.TopicDTO, error)
}

type TopicDeleter interface {
	Execute(ctx context.Context, cmd usecases.DeleteTopicCommand) error
}

type ConversationLister interface {
	Execute(ctx context.Context, q usecases.ListConversationsQuery) ([]*dto.ConversationDTO, error)
}

type ConversationSender interface {
	Execute(ctx context.Context, cmd usecases.SendConversationCommand) (*dto.ConversationDTO, error)
}

type TopicReadMarker interface {
	Execute(ctx context.Context, cmd usecases.MarkTopicReadCommand) (*usecases.MarkTopicReadResult, error)
}

type PartnerLister interface {
	Partners(ctx context.Context, caller common.Caller) ([]*dto.PartnerDTO, error)
	Unread(ctx context.Context, caller common.Caller) (int64, error)
}

type UseCases struct {
	List          TopicLister
	Create        TopicCreator
	Status        TopicStatusUpdater
	Delete        TopicDeleter
	Conversations ConversationLister
	Send          ConversationSender
	MarkRead      TopicReadMarker
	Partners      PartnerLister
}

type FindRequest struct {
	QueryParams query.Params `json:"queryParams"`
}

type CreateTopicRequest struct {
	ToID    uint   `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"msg"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SendRequest struct {
	Msg string `json:"msg" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type TopicHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTopicHandler(uc UseCases, logger logger.Interface) *TopicHandler {
	return &TopicHandler{uc: uc, logger: logger}
}

func parseTopicID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "topic")
}

// FindTopics handles POST /topics/find
func (h *TopicHandler) FindTopics(c *gin.Context) {
	var req FindRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.list(c, req.QueryParams)
}

// ListTopics handles GET /topics, which is never paginated.
func (h *TopicHandler) ListTopics(c *gin.Context) {
	h.list(c, query.Params{})
}

func (h *TopicHandler) list(c *gin.Context, params query.Params) {
	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListTopicsQuery{
		Caller: middleware.Caller(c),
		Params: params,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.TotalCount, result.Page, result.PageSize)
}

// SearchTopics handles GET /topics/search?q=
func (h *TopicHandler) SearchTopics(c *gin.Context) {
	result, err := h.uc.List.Search(c.Request.Context(), usecases.SearchTopicsQuery{
		Caller: middleware.Caller(c),
		Text:   c.Query("q"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTopic handles POST /topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req CreateTopicRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create topic", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateTopicCommand{
		Caller:  middleware.Caller(c),
		ToID:    req.ToID,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Topic created successfully")
}

// UpdateStatus handles PUT /topics/:id/status
func (h *TopicHandler) UpdateStatus(c *gin.Context) {
	topicID, err := parseTopicID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Status.Execute(c.Request.Context(), usecases.UpdateTopicStatusCommand{
		Caller:  middleware.Caller(c),
		TopicID: topicID,
		Status:  req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteTopic handles DELETE /topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	topicID, err := parseTopicID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTopicCommand{
		Caller:  middleware.Caller(c),
		TopicID: topicID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListConversations handles GET /topics/:id/conversations. Retrieval marks
// the entries read.
func (h *TopicHandler) ListConversations(c *gin.Context) {
	topicID, err := parseTopicID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Conversations.Execute(c.Request.Context(), usecases.ListConversationsQuery{
		Caller:  middleware.Caller(c),
		TopicID: topicID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkRead handles POST /topics/:id/read
func (h *TopicHandler) MarkRead(c *gin.Context) {
	topicID, err := parseTopicID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.MarkRead.Execute(c.Request.Context(), usecases.MarkTopicReadCommand{
		Caller:  middleware.Caller(c),
		TopicID: topicID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SendConversation handles POST /topics/:id/conversations
func (h *TopicHandler) SendConversation(c *gin.Context) {
	topicID, err := parseTopicID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SendRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Send.Execute(c.Request.Context(), usecases.SendConversationCommand{
		Caller:  middleware.Caller(c),
		TopicID: topicID,
		Msg:     req.Msg,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Message sent successfully")
}

// ChatPartners handles GET /conversations/partners
func (h *TopicHandler) ChatPartners(c *gin.Context) {
	result, err := h.uc.Partners.Partners(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UnreadCount handles GET /conversations/unread
func (h *TopicHandler) UnreadCount(c *gin.Context) {
	n, err := h.uc.Partners.Unread(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", CountResponse{Count: n})
}
