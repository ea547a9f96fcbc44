package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// StudentID is the caller-assigned natural key, unique across all records
// and immutable after creation. There is no stored reference between a
// Student and any User record.
type Student struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     string     `json:"studentId" db:"student_id"`
	FirstName     string     `json:"firstName" db:"first_name"`
	MiddleName    string     `json:"middleName" db:"middle_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	Program       string     `json:"program" db:"program"`
	Year          int        `json:"year" db:"year"`
	Section       string     `json:"section" db:"section"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ContactNumber string     `json:"contactNumber" db:"contact_number"`
	Address       string     `json:"address" db:"address"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
