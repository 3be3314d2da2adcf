package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classconnect/classconnect-api/internal/dto"
	"github.com/classconnect/classconnect-api/internal/models"
	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
)

const assignmentListCacheKey = "assignments:list"

type assignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

type fileStore interface {
	Store(r io.Reader, originalName string) (string, error)
}

// AssignmentService owns the assignment lifecycle.
type AssignmentService struct {
	repo      assignmentRepository
	files     fileStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the service. cache may be nil.
func NewAssignmentService(repo assignmentRepository, files fileStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{repo: repo, files: files, cache: cache, validator: validate, logger: logger}
}

// Create stores a new assignment. Title and teacher id are required; every
// other field falls back to its default. When a file accompanies the request
// it is persisted first and its path recorded on the row.
func (s *AssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest, file *dto.FileUpload) (*models.Assignment, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.TeacherID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title and teacher ID are required")
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     parseDueDate(req.DueDate),
		TeacherID:   req.TeacherID,
		ClassName:   req.ClassName,
		Language:    req.Language,
	}
	if assignment.Language == "" {
		assignment.Language = models.DefaultLanguage
	}

	if file != nil {
		path, err := s.files.Store(file.Content, file.Filename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
		}
		assignment.FilePath = &path
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.invalidateListCache(ctx)
	s.logger.Info("assignment created", zap.String("assignment_id", assignment.ID), zap.String("teacher_id", assignment.TeacherID))

	return assignment, nil
}

// List returns all assignments, newest first.
func (s *AssignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	var cached []models.Assignment
	if hit, _ := s.cache.Get(ctx, assignmentListCacheKey, &cached); hit {
		return cached, nil
	}

	assignments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	_ = s.cache.Set(ctx, assignmentListCacheKey, assignments, 0)

	return assignments, nil
}

// GetByID returns a single assignment.
func (s *AssignmentService) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assignment")
	}
	return assignment, nil
}

// Update merges the allow-listed fields into an existing assignment. Only the
// owning teacher may update a record; a replacement file overwrites the
// stored file path.
func (s *AssignmentService) Update(ctx context.Context, id string, req dto.UpdateAssignmentRequest, file *dto.FileUpload, actor *models.JWTClaims) (*models.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assignment")
	}

	if err := s.authorizeOwner(assignment, actor); err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title cannot be empty")
		}
		assignment.Title = *req.Title
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = parseDueDate(*req.DueDate)
	}
	if req.ClassName != nil {
		assignment.ClassName = *req.ClassName
	}
	if req.Language != nil {
		assignment.Language = *req.Language
	}

	if file != nil {
		path, err := s.files.Store(file.Content, file.Filename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
		}
		assignment.FilePath = &path
	}

	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}

	s.invalidateListCache(ctx)

	return assignment, nil
}

// DeleteOne removes a single assignment owned by the acting teacher.
func (s *AssignmentService) DeleteOne(ctx context.Context, id string, actor *models.JWTClaims) error {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assignment")
	}

	if err := s.authorizeOwner(assignment, actor); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}

	s.invalidateListCache(ctx)

	return nil
}

// DeleteAll wipes the whole collection. Route-level RBAC restricts this to
// authenticated teachers.
func (s *AssignmentService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignments")
	}

	s.invalidateListCache(ctx)
	s.logger.Warn("all assignments deleted")

	return nil
}

func (s *AssignmentService) authorizeOwner(assignment *models.Assignment, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if assignment.TeacherID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owning teacher may modify this assignment")
	}
	return nil
}

func (s *AssignmentService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, assignmentListCacheKey); err != nil {
		s.logger.Warn("failed to invalidate assignment cache", zap.Error(err))
	}
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDueDate is lenient: due dates are optional and historically arrived as
// arbitrary strings, so anything unparseable degrades to null.
func parseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
