package models

import "time"

// UserRole represents the three dashboard roles.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
	RoleTeacher UserRole = "teacher"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleTeacher:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
// The role is fixed at creation; email is the uniqueness key for signup.
type User struct {
	ID           string    `db:"id" json:"id"`
	Role         UserRole  `db:"role" json:"role"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	ClassCode    *string   `db:"class_code" json:"class_code,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
