// Package holiday serves leave requests and the day-off calendar.
package holiday

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/application/holiday/usecases"
	domain "github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type HolidayLister interface {
	Execute(ctx context.Context, q usecases.ListHolidaysQuery) (*dto.HolidayListDTO, error)
}

type HolidayGetter interface {
	Execute(ctx context.Context, q usecases.GetHolidayQuery) (*dto.HolidayDTO, error)
}

type HolidayCreator interface {
	Execute(ctx context.Context, cmd usecases.CreateHolidayCommand) (*dto.HolidayDTO, error)
}

type HolidayUpdater interface {
	Execute(ctx context.Context, cmd usecases.UpdateHolidayCommand) (*dto.HolidayDTO, error)
}

type HolidayDeleter interface {
	Execute(ctx context.Context, cmd usecases.DeleteHolidayCommand) error
}

type HolidayDecider interface {
	Execute(ctx context.Context, cmd usecases.DecideHolidayCommand) (*dto.HolidayDTO, error)
}

type HolidayCanceller interface {
	Execute(ctx context.Context, cmd usecases.CancelHolidayCommand) (*dto.HolidayDTO, error)
}

type DaysoffManager interface {
	List(ctx context.Context) ([]*dto.DaysoffDTO, error)
	Create(ctx context.Context, cmd usecases.DaysoffCommand) (*dto.DaysoffDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.DaysoffCommand) (*dto.DaysoffDTO, error)
	Delete(ctx context.Context, id uint) error
}

type UseCases struct {
	List    HolidayLister
	Get     HolidayGetter
	Create  HolidayCreator
	Update  HolidayUpdater
	Delete  HolidayDeleter
	Decide  HolidayDecider
	Cancel  HolidayCanceller
	Daysoff DaysoffManager
}

type FindRequest struct {
	QueryParams query.Params `json:"queryParams"`
}

type CreateHolidayRequest struct {
	UserID uint   `json:"user"`
	From   string `json:"from" validate:"required,datetime=2006-01-02"`
	To     string `json:"to" validate:"required,datetime=2006-01-02"`
	Notes  string `json:"notes"`
	Status string `json:"status" validate:"omitempty,oneof=Open Approve Reject Cancel"`
}

type UpdateHolidayRequest struct {
	From  string `json:"from" validate:"required,datetime=2006-01-02"`
	To    string `json:"to" validate:"required,datetime=2006-01-02"`
	Notes string `json:"notes"`
}

type DecisionRequest struct {
	IsOkByHr       bool `json:"isOkByHr"`
	IsOkByChef     bool `json:"isOkByChef"`
	IsRejectByHr   bool `json:"isRejectByHr"`
	IsRejectByChef bool `json:"isRejectByChef"`
}

type DaysoffRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type HolidayHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewHolidayHandler(uc UseCases, logger logger.Interface) *HolidayHandler {
	return &HolidayHandler{uc: uc, logger: logger}
}

func parseHolidayID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "holiday")
}

// FindHolidays handles POST /holidays/find
func (h *HolidayHandler) FindHolidays(c *gin.Context) {
	var req FindRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListHolidaysQuery{
		Caller: middleware.Caller(c),
		Params: req.QueryParams,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.TotalCount, result.Page, result.PageSize)
}

// GetHoliday handles GET /holidays/:id
func (h *HolidayHandler) GetHoliday(c *gin.Context) {
	holidayID, err := parseHolidayID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetHolidayQuery{
		Caller:    middleware.Caller(c),
		HolidayID: holidayID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateHoliday handles POST /holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create holiday", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateHolidayCommand{
		Caller: middleware.Caller(c),
		UserID: req.UserID,
		From:   req.From,
		To:     req.To,
		Notes:  req.Notes,
		Status: req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Holiday request created successfully")
}

// UpdateHoliday handles PUT /holidays/:id
func (h *HolidayHandler) UpdateHoliday(c *gin.Context) {
	holidayID, err := parseHolidayID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateHolidayRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), usecases.UpdateHolidayCommand{
		Caller:    middleware.Caller(c),
		HolidayID: holidayID,
		From:      req.From,
		To:        req.To,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteHoliday handles DELETE /holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	holidayID, err := parseHolidayID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteHolidayCommand{
		Caller:    middleware.Caller(c),
		HolidayID: holidayID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// Decide handles PUT /holidays/:id/decision
func (h *HolidayHandler) Decide(c *gin.Context) {
	holidayID, err := parseHolidayID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DecisionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Decide.Execute(c.Request.Context(), usecases.DecideHolidayCommand{
		Caller:    middleware.Caller(c),
		HolidayID: holidayID,
		Decision: domain.Decision{
			IsOkByHr:       req.IsOkByHr,
			IsOkByChef:     req.IsOkByChef,
			IsRejectByHr:   req.IsRejectByHr,
			IsRejectByChef: req.IsRejectByChef,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Cancel handles PUT /holidays/:id/cancel
func (h *HolidayHandler) Cancel(c *gin.Context) {
	holidayID, err := parseHolidayID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Cancel.Execute(c.Request.Context(), usecases.CancelHolidayCommand{
		Caller:    middleware.Caller(c),
		HolidayID: holidayID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListDaysoff handles GET /daysoff
func (h *HolidayHandler) ListDaysoff(c *gin.Context) {
	result, err := h.uc.Daysoff.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateDaysoff handles POST /daysoff
func (h *HolidayHandler) CreateDaysoff(c *gin.Context) {
	var req DaysoffRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Daysoff.Create(c.Request.Context(), usecases.DaysoffCommand{Name: req.Name, Date: req.Date})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Day off created successfully")
}

// UpdateDaysoff handles PUT /daysoff/:id
func (h *HolidayHandler) UpdateDaysoff(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "day off")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DaysoffRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Daysoff.Update(c.Request.Context(), id, usecases.DaysoffCommand{Name: req.Name, Date: req.Date})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteDaysoff handles DELETE /daysoff/:id
func (h *HolidayHandler) DeleteDaysoff(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "day off")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Daysoff.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
