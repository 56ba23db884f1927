// Package upload accepts message attachments and serves them back.
package upload

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/domain/shared"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) (shared.Attachment, error)
	Open(ctx context.Context, name string) (*os.File, string, error)
}

type UploadResponse struct {
	Body string `json:"body"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type UploadHandler struct {
	store  BlobStore
	logger logger.Interface
}

func NewUploadHandler(store BlobStore, logger logger.Interface) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// Upload handles POST /uploads. The returned body is what a client puts
// into a message to reference the blob.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("a file field is required"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Warnw("failed to open uploaded file", "filename", fh.Filename, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("unreadable upload"))
		return
	}
	defer f.Close()

	att, err := h.store.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, UploadResponse{
		Body: att.Body(),
		Kind: string(att.Kind),
		Name: att.Name,
	}, "File uploaded successfully")
}

// Download handles GET /uploads/:name
func (h *UploadHandler) Download(c *gin.Context) {
	f, mime, err := h.store.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.logger.Errorw("failed to stat stored file", "name", c.Param("name"), "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read file"))
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), mime, f, map[string]string{
		"Cache-Control":          "private, max-age=86400",
		"X-Content-Type-Options": "nosniff",
	})
}
