package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/dto"
	"github.com/classconnect/classconnect-api/internal/service"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
	"github.com/classconnect/classconnect-api/pkg/response"
)

// ExerciseHandler serves generated exercise downloads.
type ExerciseHandler struct {
	service *service.ExerciseService
}

// NewExerciseHandler constructs the handler.
func NewExerciseHandler(svc *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: svc}
}

// Download handles POST /download-exercise, streaming the generated file back
// as a text attachment.
func (h *ExerciseHandler) Download(c *gin.Context) {
	var req dto.DownloadExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "no content provided"))
		return
	}

	file, err := h.service.Generate(req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer h.service.Cleanup(file)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", file.Content)
}
