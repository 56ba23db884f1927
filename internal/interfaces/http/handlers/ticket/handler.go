// Package ticket serves the ticket and ticket-message endpoints.
package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/ticket/usecases"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{uc: uc, logger: logger}
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "ticket")
}

// FindTickets handles POST /tickets/find
func (h *TicketHandler) FindTickets(c *gin.Context) {
	h.find(c, false)
}

// AdminFindTickets handles POST /tickets/admin/find
func (h *TicketHandler) AdminFindTickets(c *gin.Context) {
	h.find(c, true)
}

func (h *TicketHandler) find(c *gin.Context, admin bool) {
	var req FindRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListTicketsQuery{Caller: middleware.Caller(c), Params: req.QueryParams}
	run := h.uc.List.Execute
	if admin {
		run = h.uc.List.ExecuteAdmin
	}
	result, err := run(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.TotalCount, result.Page, result.PageSize)
}

// CountByStatus handles GET /tickets/count
func (h *TicketHandler) CountByStatus(c *gin.Context) {
	result, err := h.uc.Counters.StatusCounts(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// TicketIDs handles POST /tickets/ids
func (h *TicketHandler) TicketIDs(c *gin.Context) {
	var req FindRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ids, err := h.uc.Counters.IDs(c.Request.Context(), middleware.Caller(c), req.QueryParams)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ids)
}

// OpenCount handles GET /tickets/open: unread ticket messages only.
func (h *TicketHandler) OpenCount(c *gin.Context) {
	summary, err := h.uc.Counters.Unread(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", CountResponse{Count: summary.Tickets})
}

// UnreadSummary handles GET /tickets/unread
func (h *TicketHandler) UnreadSummary(c *gin.Context) {
	summary, err := h.uc.Counters.Unread(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// SearchTickets handles GET /tickets/search?q=
func (h *TicketHandler) SearchTickets(c *gin.Context) {
	h.search(c, false)
}

// AdminSearchTickets handles GET /tickets/admin/search?q=
func (h *TicketHandler) AdminSearchTickets(c *gin.Context) {
	h.search(c, true)
}

func (h *TicketHandler) search(c *gin.Context, admin bool) {
	q := usecases.SearchTicketsQuery{Caller: middleware.Caller(c), Text: c.Query("q")}
	run := h.uc.Search.Execute
	if admin {
		run = h.uc.Search.ExecuteAdmin
	}
	result, err := run(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Caller:   middleware.Caller(c),
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(middleware.Caller(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// UpdateTicket handles PUT /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.ToCommand(middleware.Caller(c), ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTicketsCommand{
		Caller:    middleware.Caller(c),
		TicketIDs: []uint{ticketID},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if len(result.Deleted) == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "ticket not found")
		return
	}
	utils.NoContentResponse(c)
}

// DeleteTickets handles POST /tickets/delete
func (h *TicketHandler) DeleteTickets(c *gin.Context) {
	var req IDsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTicketsCommand{
		Caller:    middleware.Caller(c),
		TicketIDs: req.IDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// BulkUpdateStatus handles POST /tickets/status
func (h *TicketHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Status.Execute(c.Request.Context(), usecases.BulkUpdateStatusCommand{
		Caller:    middleware.Caller(c),
		TicketIDs: req.IDs,
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PinTicket handles PUT /tickets/:id/pin
func (h *TicketHandler) PinTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PinRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Pin.Execute(c.Request.Context(), usecases.PinTicketCommand{
		Caller:   middleware.Caller(c),
		TicketID: ticketID,
		Pinned:   req.Pinned,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ForwardTicket handles PUT /tickets/:id/forward
func (h *TicketHandler) ForwardTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ForwardRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Forward.Execute(c.Request.Context(), usecases.ForwardTicketCommand{
		Caller:       middleware.Caller(c),
		TicketID:     ticketID,
		TargetTeamID: req.TargetTeamID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket forwarded successfully", result)
}

// ListMessages handles GET /tickets/:id/messages. Retrieval marks them read.
func (h *TicketHandler) ListMessages(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Messages.Execute(c.Request.Context(), usecases.ListMessagesQuery{
		Caller:   middleware.Caller(c),
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkRead handles POST /tickets/:id/read
func (h *TicketHandler) MarkRead(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.MarkRead.Execute(c.Request.Context(), usecases.MarkTicketReadCommand{
		Caller:   middleware.Caller(c),
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PostMessage handles POST /tickets/:id/messages
func (h *TicketHandler) PostMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PostMessageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Post.Execute(c.Request.Context(), usecases.PostMessageCommand{
		Caller:   middleware.Caller(c),
		TicketID: ticketID,
		Body:     req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Message posted successfully")
}
