package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmdelacruz/sis-backend/internal/app/models"
	"github.com/jmdelacruz/sis-backend/internal/pkg/apperrors"
	"github.com/jmdelacruz/sis-backend/internal/pkg/dberrors"
	"github.com/jmdelacruz/sis-backend/internal/pkg/logger"
)

// IStudentRepository defines the interface for student record store operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
	List(ctx context.Context) ([]*models.Student, error)
	// UpdateByStudentID applies a partial column update and returns the
	// updated record. The natural key is never among the fields.
	UpdateByStudentID(ctx context.Context, studentID string, fields map[string]interface{}) (*models.Student, error)
	DeleteByStudentID(ctx context.Context, studentID string) error
}

const studentColumns = "id, student_id, first_name, middle_name, last_name, program, year, section, date_of_birth, contact_number, address, created_at, updated_at"

// StudentRepository is the Postgres-backed student store
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.StudentID, &student.FirstName, &student.MiddleName, &student.LastName,
		&student.Program, &student.Year, &student.Section, &student.DateOfBirth,
		&student.ContactNumber, &student.Address, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Create inserts a new student profile. A unique violation on student_id is
// reported as the duplicate-profile conflict even when the pre-check passed.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (student_id, first_name, middle_name, last_name, program, year, section, date_of_birth, contact_number, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		student.StudentID, student.FirstName, student.MiddleName, student.LastName,
		student.Program, student.Year, student.Section, student.DateOfBirth,
		student.ContactNumber, student.Address).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create student with duplicate student ID")
			return apperrors.ErrStudentIDExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("studentID", student.StudentID).Msg("Student profile created")
	return nil
}

// GetByStudentID retrieves a student by natural key
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student by storage-assigned id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// StudentIDExists checks if a student ID is already taken
func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return exists, nil
}

// List retrieves all students, unconditionally and unpaginated
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateByStudentID applies a partial update keyed by the natural key
func (r *StudentRepository) UpdateByStudentID(ctx context.Context, studentID string, fields map[string]interface{}) (*models.Student, error) {
	if len(fields) == 0 {
		return r.GetByStudentID(ctx, studentID)
	}

	sql, args, err := r.sb.Update("students").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"student_id": studentID}).
		Suffix("RETURNING " + studentColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// DeleteByStudentID removes a student by natural key. Deleting an absent key
// reports not-found rather than succeeding silently.
func (r *StudentRepository) DeleteByStudentID(ctx context.Context, studentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
