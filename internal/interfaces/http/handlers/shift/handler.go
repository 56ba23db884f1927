// Package shift serves the shift catalogue used by the planning.
package shift

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/shift/dto"
	"github.com/deskhub/deskhub/internal/application/shift/usecases"
	domain "github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type ShiftManager interface {
	List(ctx context.Context, includeDeleted bool) ([]*dto.ShiftDTO, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, caller common.Caller, spec domain.Spec) (*dto.ShiftDTO, error)
	SetDeleted(ctx context.Context, id uint, deleted bool) (*dto.ShiftDTO, error)
}

type PlanningManager interface {
	Assign(ctx context.Context, cmds []usecases.RecordCommand) (int64, error)
	Remove(ctx context.Context, id uint) error
	RemoveInRange(ctx context.Context, ids []uint, from, to string) (int64, error)
	Planning(ctx context.Context, q usecases.PlanningQuery) ([]*dto.RecordDTO, error)
}

type ListQuery struct {
	All bool `form:"all"`
}

type ShiftRequest struct {
	Value   string `json:"value" validate:"required,max=255"`
	BgColor string `json:"bgColor" validate:"omitempty,hexcolor"`
	Holiday bool   `json:"holiday"`
	Entity  *uint  `json:"entity"`
}

type DeletedRequest struct {
	Deleted bool `json:"deleted"`
}

type RecordRequest struct {
	User   uint   `json:"user" validate:"required"`
	Shift  uint   `json:"shift" validate:"required"`
	Day    string `json:"day" validate:"required,datetime=2006-01-02"`
	BoxDay int    `json:"boxDay" validate:"min=0"`
}

type RemoveRecordsRequest struct {
	IDs  []uint `json:"ids" validate:"required,min=1"`
	From string `json:"start_date" validate:"required,datetime=2006-01-02"`
	To   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type PlanningRequest struct {
	From   string `form:"start_date" binding:"required"`
	To     string `form:"end_date" binding:"required"`
	Entity *uint  `form:"entity"`
	Teams  []uint `form:"team"`
}

type ShiftHandler struct {
	uc       ShiftManager
	planning PlanningManager
	logger   logger.Interface
}

func NewShiftHandler(uc ShiftManager, planning PlanningManager, logger logger.Interface) *ShiftHandler {
	return &ShiftHandler{uc: uc, planning: planning, logger: logger}
}

// List handles GET /shifts
func (h *ShiftHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query")
		return
	}
	result, err := h.uc.List(c.Request.Context(), q.All)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Count handles GET /shifts/count
func (h *ShiftHandler) Count(c *gin.Context) {
	n, err := h.uc.Count(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"count": n})
}

// Create handles POST /shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req ShiftRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Create(c.Request.Context(), middleware.Caller(c), domain.Spec{
		Value:    req.Value,
		BgColor:  req.BgColor,
		Holiday:  req.Holiday,
		EntityID: req.Entity,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Shift created successfully")
}

// SetDeleted handles PUT /shifts/:id/deleted
func (h *ShiftHandler) SetDeleted(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "shift")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req DeletedRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.SetDeleted(c.Request.Context(), id, req.Deleted)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Planning handles GET /records
func (h *ShiftHandler) Planning(c *gin.Context) {
	var req PlanningRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}
	result, err := h.planning.Planning(c.Request.Context(), usecases.PlanningQuery{
		Caller:   middleware.Caller(c),
		From:     req.From,
		To:       req.To,
		EntityID: req.Entity,
		TeamIDs:  req.Teams,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AssignRecords handles POST /records
func (h *ShiftHandler) AssignRecords(c *gin.Context) {
	var req []RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	cmds := make([]usecases.RecordCommand, 0, len(req))
	for i := range req {
		if err := utils.ValidateStruct(&req[i]); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		cmds = append(cmds, usecases.RecordCommand{
			UserID:  req[i].User,
			ShiftID: req[i].Shift,
			Day:     req[i].Day,
			BoxDay:  req[i].BoxDay,
		})
	}
	n, err := h.planning.Assign(c.Request.Context(), cmds)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"affected": n})
}

// RemoveRecord handles DELETE /records/:id
func (h *ShiftHandler) RemoveRecord(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.planning.Remove(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// RemoveRecords handles POST /records/delete
func (h *ShiftHandler) RemoveRecords(c *gin.Context) {
	var req RemoveRecordsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	n, err := h.planning.RemoveInRange(c.Request.Context(), req.IDs, req.From, req.To)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"affected": n})
}
