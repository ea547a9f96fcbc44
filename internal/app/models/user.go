package models

import (
	"time"
)

// Role values accepted for the optional user role field.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the accepted role strings.
// The role is stored and echoed back but never enforced server-side.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table.
// UserID is the caller-assigned natural key; ID is the storage-assigned id.
type User struct {
	ID         int64     `json:"id" db:"id"`                          // Storage-assigned identifier
	UserID     string    `json:"userId" db:"user_id"`                 // Natural key, immutable after creation
	FirstName  string    `json:"firstName" db:"first_name"`           // User's first name
	MiddleName string    `json:"middleName,omitempty" db:"middle_name"` // Optional middle name
	LastName   string    `json:"lastName" db:"last_name"`             // User's last name
	Email      string    `json:"email" db:"email"`                    // Unique, stored lowercase
	Password   string    `json:"-" db:"password"`                     // Salted bcrypt hash (never serialized)
	Role       string    `json:"role,omitempty" db:"role"`            // Optional: admin, teacher or student
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`           // Set by the store
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`           // Set by the store
}
