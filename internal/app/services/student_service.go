package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jmdelacruz/sis-backend/internal/app/models"
	"github.com/jmdelacruz/sis-backend/internal/app/models/dto"
	"github.com/jmdelacruz/sis-backend/internal/app/repositories"
	"github.com/jmdelacruz/sis-backend/internal/pkg/apperrors"
	"github.com/jmdelacruz/sis-backend/internal/pkg/validation"
)

// StudentService handles student profile CRUD flows
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Validate runs the required-field presence check over a creation payload
// without touching the store. Backs the dry-run endpoint the admin console
// calls before submitting the profile wizard.
func (s *StudentService) Validate(req *dto.CreateStudentRequest) validation.Result {
	return validation.Require(validation.Fields{
		"studentId": req.StudentID,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"program":   req.Program,
		"year":      req.Year,
		"section":   req.Section,
	})
}

// Create validates and persists a new student profile
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	result := s.Validate(req)
	if !result.IsValid {
		return nil, apperrors.NewValidationError(result.RequiredFields)
	}

	exists, err := s.studentRepo.StudentIDExists(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking student ID: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentIDExists
	}

	student := &models.Student{
		StudentID:     req.StudentID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Program:       req.Program,
		Year:          req.Year,
		Section:       req.Section,
		DateOfBirth:   req.DateOfBirth,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", student.StudentID).Msg("Student profile created")
	return student, nil
}

// GetByStudentID looks up a student by natural key
func (s *StudentService) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return s.studentRepo.GetByStudentID(ctx, studentID)
}

// GetByID looks up a student by storage-assigned id
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List returns every student record; pagination, if any, is client-side
func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

// Update applies an allow-listed partial update. The studentId natural key
// is not part of the allow-list, so a caller-supplied value for it is
// silently dropped and the key never changes.
func (s *StudentService) Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.MiddleName != nil {
		fields["middle_name"] = *req.MiddleName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Program != nil {
		fields["program"] = *req.Program
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Section != nil {
		fields["section"] = *req.Section
	}
	if req.DateOfBirth != nil {
		fields["date_of_birth"] = *req.DateOfBirth
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	student, err := s.studentRepo.UpdateByStudentID(ctx, studentID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", studentID).Msg("Student profile updated")
	return student, nil
}

// Delete removes a student by natural key
func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	if err := s.studentRepo.DeleteByStudentID(ctx, studentID); err != nil {
		return err
	}
	s.logger.Info().Str("studentID", studentID).Msg("Student profile deleted")
	return nil
}
