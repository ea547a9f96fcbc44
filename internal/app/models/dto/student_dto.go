package dto

import (
	"time"

	"github.com/jmdelacruz/sis-backend/internal/app/models"
)

// CreateStudentRequest represents a student profile creation request
type CreateStudentRequest struct {
	StudentID     string     `json:"studentId"`
	FirstName     string     `json:"firstName"`
	MiddleName    string     `json:"middleName"`
	LastName      string     `json:"lastName"`
	Program       string     `json:"program"`
	Year          int        `json:"year"`
	Section       string     `json:"section"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	ContactNumber string     `json:"contactNumber"`
	Address       string     `json:"address"`
}

// UpdateStudentRequest represents a partial student update. The studentId
// natural key is deliberately absent: a caller-supplied value for it is
// dropped before the update is applied.
type UpdateStudentRequest struct {
	FirstName     *string    `json:"firstName"`
	MiddleName    *string    `json:"middleName"`
	LastName      *string    `json:"lastName"`
	Program       *string    `json:"program"`
	Year          *int       `json:"year"`
	Section       *string    `json:"section"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	ContactNumber *string    `json:"contactNumber"`
	Address       *string    `json:"address"`
}

// StudentResponse wraps a student record with a message
type StudentResponse struct {
	Message string          `json:"message"`
	Student *models.Student `json:"student"`
}
