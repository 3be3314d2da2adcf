package dto

import "io"

// CreateAssignmentRequest carries the multipart form fields for creating an
// assignment. The file part is handled separately by the handler.
type CreateAssignmentRequest struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"dueDate" json:"dueDate"`
	TeacherID   string `form:"teacherId" json:"teacherId" validate:"required"`
	ClassName   string `form:"className" json:"className"`
	Language    string `form:"language" json:"language"`
}

// UpdateAssignmentRequest enumerates the fields a partial update may touch.
// Anything outside this allow-list never reaches the persistence layer, so
// clients cannot inject arbitrary columns.
type UpdateAssignmentRequest struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	DueDate     *string `form:"dueDate" json:"dueDate"`
	ClassName   *string `form:"className" json:"className"`
	Language    *string `form:"language" json:"language"`
}

// FileUpload describes an incoming attachment stream.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}
