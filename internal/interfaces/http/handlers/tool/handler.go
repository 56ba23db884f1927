// Package tool serves the per-entity tool catalogue.
package tool

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/application/common"
	"github.com/deskhub/deskhub/internal/application/tool/dto"
	domain "github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type ToolManager interface {
	List(ctx context.Context, caller common.Caller) ([]*dto.ToolDTO, error)
	ListByEntity(ctx context.Context, caller common.Caller, entityID uint) ([]*dto.ToolDTO, error)
	Get(ctx context.Context, caller common.Caller, id uint) (*dto.ToolDTO, error)
	Create(ctx context.Context, spec domain.Spec) (*dto.ToolDTO, error)
	Update(ctx context.Context, id uint, spec domain.Spec) (*dto.ToolDTO, error)
	Delete(ctx context.Context, ids []uint) (int64, error)
}

type ToolRequest struct {
	Entity      *uint  `json:"entity"`
	Tool        string `json:"tool" validate:"required,max=255"`
	Name        string `json:"name" validate:"required,max=255"`
	Server      string `json:"server" validate:"required"`
	Port        int    `json:"port" validate:"required,min=1,max=65535"`
	Password    string `json:"password"`
	APILink     string `json:"api_link" validate:"omitempty,url"`
	Description string `json:"description"`
	ClientURL   string `json:"client_url" validate:"omitempty,url"`
	Active      bool   `json:"active"`
}

func (r ToolRequest) spec() domain.Spec {
	return domain.Spec{
		EntityID:    r.Entity,
		Tool:        r.Tool,
		Name:        r.Name,
		Server:      r.Server,
		Port:        r.Port,
		Password:    r.Password,
		APILink:     r.APILink,
		Description: r.Description,
		ClientURL:   r.ClientURL,
		Active:      r.Active,
	}
}

type DeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

type ToolHandler struct {
	uc     ToolManager
	logger logger.Interface
}

func NewToolHandler(uc ToolManager, logger logger.Interface) *ToolHandler {
	return &ToolHandler{uc: uc, logger: logger}
}

// List handles GET /tools
func (h *ToolHandler) List(c *gin.Context) {
	result, err := h.uc.List(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListByEntity handles GET /tools/entity/:entityId
func (h *ToolHandler) ListByEntity(c *gin.Context) {
	entityID, err := utils.ParseUintParam(c, "entityId", "entity")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.ListByEntity(c.Request.Context(), middleware.Caller(c), entityID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /tools/:id
func (h *ToolHandler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "tool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Get(c.Request.Context(), middleware.Caller(c), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Create handles POST /tools
func (h *ToolHandler) Create(c *gin.Context) {
	var req ToolRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create tool", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Create(c.Request.Context(), req.spec())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Tool created successfully")
}

// Update handles PUT /tools/:id
func (h *ToolHandler) Update(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "tool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req ToolRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, req.spec())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Delete handles POST /tools/delete
func (h *ToolHandler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	n, err := h.uc.Delete(c.Request.Context(), req.IDs)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"affected": n})
}

// DeleteOne handles DELETE /tools/:id
func (h *ToolHandler) DeleteOne(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "tool")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	n, err := h.uc.Delete(c.Request.Context(), []uint{id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if n == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "tool not found")
		return
	}
	utils.NoContentResponse(c)
}
