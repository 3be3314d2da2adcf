package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect/classconnect-api/internal/models"
)

func assignmentColumns() []string {
	return []string{"id", "title", "description", "due_date", "teacher_id", "class_name", "language", "file_path", "created_at", "updated_at"}
}

func TestListAssignmentsNewestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(assignmentColumns()).
		AddRow("a2", "Newer", "", nil, "t1", "", "English", nil, now, now).
		AddRow("a1", "Older", "", nil, "t1", "", "English", nil, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).WillReturnRows(rows)

	assignments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "Newer", assignments[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAssignmentByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	now := time.Now()
	filePath := "/uploads/123-essay.pdf"
	rows := sqlmock.NewRows(assignmentColumns()).
		AddRow("a1", "Essay", "Write 500 words", nil, "t1", "5B", "German", filePath, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM assignments WHERE id = $1 LIMIT 1")).
		WithArgs("a1").
		WillReturnRows(rows)

	assignment, err := repo.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Essay", assignment.Title)
	require.NotNil(t, assignment.FilePath)
	assert.Equal(t, filePath, *assignment.FilePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentAssignsIDAndTimestamps(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.Assignment{Title: "Essay", TeacherID: "t1", Language: models.DefaultLanguage}
	err := repo.Create(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
	assert.False(t, assignment.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAssignmentReportsMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllAssignments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
