package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classconnect/classconnect-api/internal/models"
)

// AssignmentRepository provides persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns every assignment ordered by creation time, most recent first.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	const query = `SELECT id, title, description, due_date, teacher_id, class_name, language, file_path, created_at, updated_at
FROM assignments ORDER BY created_at DESC`
	assignments := []models.Assignment{}
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// GetByID returns an assignment by identifier.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	const query = `SELECT id, title, description, due_date, teacher_id, class_name, language, file_path, created_at, updated_at
FROM assignments WHERE id = $1 LIMIT 1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now
	const query = `INSERT INTO assignments (id, title, description, due_date, teacher_id, class_name, language, file_path, created_at, updated_at)
VALUES (:id, :title, :description, :due_date, :teacher_id, :class_name, :language, :file_path, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET title = :title, description = :description, due_date = :due_date,
class_name = :class_name, language = :language, file_path = :file_path, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes a single assignment and reports whether a row matched.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete assignment rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAll wipes the whole collection. The statement is atomic; a crash
// cannot leave a partial sweep behind.
func (r *AssignmentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM assignments"); err != nil {
		return fmt.Errorf("delete all assignments: %w", err)
	}
	return nil
}
