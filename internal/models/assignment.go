package models

import "time"

// DefaultLanguage is applied when an assignment is created without an
// instructional language.
const DefaultLanguage = "English"

// Assignment represents a teacher-authored task row.
//
// FilePath is nil unless a file accompanied the create or update request.
type Assignment struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	TeacherID   string     `db:"teacher_id" json:"teacher_id"`
	ClassName   string     `db:"class_name" json:"class_name"`
	Language    string     `db:"language" json:"language"`
	FilePath    *string    `db:"file_path" json:"file_path"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
