package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/infrastructure/storage"
	"github.com/deskhub/deskhub/internal/interfaces/http/handlers/testutil"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := storage.NewLocalFileStore(t.TempDir(), 1, nil, logger.NewNop())
	require.NoError(t, err)
	h := NewUploadHandler(store, logger.NewNop())

	r := gin.New()
	r.POST("/uploads", h.Upload)
	r.GET("/uploads/:name", h.Download)
	return r
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadThenDownload(t *testing.T) {
	r := newRouter(t)

	body, ctype := multipartBody(t, "file", "screen.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"image"`)

	var resp struct {
		Data UploadResponse `json:"data"`
	}
	require.NoError(t, testutil.ParseResponse(w, &resp))

	req = httptest.NewRequest(http.MethodGet, "/uploads/"+resp.Data.Name, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, w.Body.Bytes())
}

func TestUpload_MissingField(t *testing.T) {
	r := newRouter(t)

	body, ctype := multipartBody(t, "attachment", "a.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownload_Missing(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/nothing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
