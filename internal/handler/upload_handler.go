package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/dto"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
	"github.com/classconnect/classconnect-api/pkg/response"
	"github.com/classconnect/classconnect-api/pkg/storage"
)

// UploadHandler accepts ad-hoc single-file uploads.
type UploadHandler struct {
	store *storage.UploadStore
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(store *storage.UploadStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /upload. Exactly one file per request.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no file uploaded"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file"))
		return
	}
	defer src.Close() //nolint:errcheck

	path, err := h.store.Store(src, fileHeader.Filename)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "file upload failed"))
		return
	}

	response.JSON(c, http.StatusOK, dto.UploadResponse{FilePath: path})
}
