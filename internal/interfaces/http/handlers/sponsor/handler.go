// Package sponsor serves the partner portal directory.
package sponsor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/sponsor/dto"
	"github.com/deskhub/deskhub/internal/application/sponsor/usecases"
	domain "github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type SponsorManager interface {
	ListAll(ctx context.Context) ([]*dto.SponsorDTO, error)
	ListForCaller(ctx context.Context, caller common.Caller) ([]*dto.SponsorSummaryDTO, error)
	GroupByEntity(ctx context.Context, caller common.Caller) ([]*dto.EntityGroupDTO, error)
	Login(ctx context.Context, caller common.Caller, id uint) (*dto.SponsorLoginDTO, error)
	Get(ctx context.Context, id uint) (*dto.SponsorDTO, error)
	Create(ctx context.Context, cmd usecases.SponsorCommand) (*dto.SponsorDTO, error)
	Update(ctx context.Context, id uint, cmd usecases.SponsorCommand) (*dto.SponsorDTO, error)
	Delete(ctx context.Context, ids []uint) (*usecases.BulkResult, error)
	SetStatus(ctx context.Context, cmd usecases.BulkStatusCommand) (*usecases.BulkResult, error)
}

type SponsorRequest struct {
	Name             string   `json:"name" validate:"required,max=255"`
	LoginLink        string   `json:"login_link" validate:"required,url"`
	HomeLink         string   `json:"home_link" validate:"omitempty,url"`
	RestrictedPages  []string `json:"restricted_pages"`
	LoginSelector    string   `json:"login_selector" validate:"required"`
	PasswordSelector string   `json:"password_selector" validate:"required"`
	SubmitSelector   string   `json:"submit_selector" validate:"required"`
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	Entities         []uint   `json:"entities" validate:"required,min=1"`
}

func (r SponsorRequest) command() usecases.SponsorCommand {
	return usecases.SponsorCommand{
		Name: r.Name,
		Login: domain.Login{
			LoginLink:        r.LoginLink,
			HomeLink:         r.HomeLink,
			RestrictedPages:  r.RestrictedPages,
			LoginSelector:    r.LoginSelector,
			PasswordSelector: r.PasswordSelector,
			SubmitSelector:   r.SubmitSelector,
			Username:         r.Username,
			Password:         r.Password,
		},
		Entities: r.Entities,
	}
}

type IDsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

type StatusRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1"`
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type SponsorHandler struct {
	uc     SponsorManager
	logger logger.Interface
}

func NewSponsorHandler(uc SponsorManager, logger logger.Interface) *SponsorHandler {
	return &SponsorHandler{uc: uc, logger: logger}
}

func parseSponsorID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "sponsor")
}

// ListAll handles GET /sponsors/all
func (h *SponsorHandler) ListAll(c *gin.Context) {
	result, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /sponsors
func (h *SponsorHandler) List(c *gin.Context) {
	result, err := h.uc.ListForCaller(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ByEntity handles GET /sponsors/by-entity
func (h *SponsorHandler) ByEntity(c *gin.Context) {
	result, err := h.uc.GroupByEntity(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Login handles GET /sponsors/:id/login
func (h *SponsorHandler) Login(c *gin.Context) {
	id, err := parseSponsorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Login(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /sponsors/:id
func (h *SponsorHandler) Get(c *gin.Context) {
	id, err := parseSponsorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create handles POST /sponsors
func (h *SponsorHandler) Create(c *gin.Context) {
	var req SponsorRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create sponsor", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Create(c.Request.Context(), req.command())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Sponsor created successfully")
}

// Update handles PUT /sponsors/:id
func (h *SponsorHandler) Update(c *gin.Context) {
	id, err := parseSponsorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req SponsorRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, req.command())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Delete handles POST /sponsors/delete
func (h *SponsorHandler) Delete(c *gin.Context) {
	var req IDsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Delete(c.Request.Context(), req.IDs)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SetStatus handles PUT /sponsors/status
func (h *SponsorHandler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.SetStatus(c.Request.Context(), usecases.BulkStatusCommand{IDs: req.IDs, Status: req.Status})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteOne handles DELETE /sponsors/:id
func (h *SponsorHandler) DeleteOne(c *gin.Context) {
	id, err := parseSponsorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Delete(c.Request.Context(), []uint{id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result.Affected == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "sponsor not found")
		return
	}
	utils.NoContentResponse(c)
}
