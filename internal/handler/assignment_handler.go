package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/dto"
	"github.com/classconnect/classconnect-api/internal/models"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
	"github.com/classconnect/classconnect-api/pkg/response"
)

type assignmentService interface {
	Create(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error)
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Update(ctx context.Context, id string, req dto.UpdateAssignmentRequest, file *dto.FileUpload, actor *models.JWTClaims) (*models.Assignment, error)
	DeleteOne(ctx context.Context, id string, actor *models.JWTClaims) error
	DeleteAll(ctx context.Context) error
}

// AssignmentHandler manages assignment HTTP endpoints.
type AssignmentHandler struct {
	service assignmentService
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service assignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Create handles POST /assignments with an optional multipart file field.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assignment payload"))
		return
	}

	file, err := h.openFormFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer file.closer.Close() //nolint:errcheck
	}

	assignment, err := h.service.Create(c.Request.Context(), req, uploadOf(file))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, assignment)
}

// List handles GET /assignments, newest first.
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// Get handles GET /assignments/:id.
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// Update handles PUT /assignments/:id with partial fields and an optional
// replacement file.
func (h *AssignmentHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assignment payload"))
		return
	}

	file, err := h.openFormFile(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer file.closer.Close() //nolint:errcheck
	}

	assignment, err := h.service.Update(c.Request.Context(), c.Param("id"), req, uploadOf(file), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, assignment)
}

// Delete handles DELETE /assignments/:id.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteOne(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "assignment deleted"})
}

// DeleteAll handles DELETE /assignments. Irreversible; RBAC restricts the
// route to teachers.
func (h *AssignmentHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "all assignments deleted"})
}

type openedFile struct {
	upload dto.FileUpload
	closer interface{ Close() error }
}

// openFormFile returns the optional "file" part of a multipart request, or
// nil when the request carries none (including JSON bodies).
func (h *AssignmentHandler) openFormFile(c *gin.Context) (*openedFile, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file")
	}

	return &openedFile{
		upload: dto.FileUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  src,
		},
		closer: src,
	}, nil
}

func uploadOf(file *openedFile) *dto.FileUpload {
	if file == nil {
		return nil
	}
	return &file.upload
}
