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

// IUserRepository defines the interface for user record store operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByEmailOrUserID is the fast-path duplicate pre-check for registration.
	// It returns apperrors.ErrUserNotFound when neither key matches.
	FindByEmailOrUserID(ctx context.Context, email, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// UpdateByUserID applies a partial column update and returns the updated
	// record. The fields map holds column names from the service allow-list.
	UpdateByUserID(ctx context.Context, userID string, fields map[string]interface{}) (*models.User, error)
	UpdateByID(ctx context.Context, id int64, fields map[string]interface{}) (*models.User, error)
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

const userColumns = "id, user_id, first_name, middle_name, last_name, email, password, role, created_at, updated_at"

// UserRepository is the Postgres-backed user store
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.UserID, &user.FirstName, &user.MiddleName, &user.LastName,
		&user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user. A unique violation on user_id or email is mapped
// to the matching conflict error: the constraint, not the pre-check, is the
// authoritative duplicate signal.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (user_id, first_name, middle_name, last_name, email, password, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		user.UserID, user.FirstName, user.MiddleName, user.LastName,
		user.Email, user.Password, user.Role).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to create user with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_user_id_key") {
			logger.Warn().Str("userID", user.UserID).Msg("Attempted to create user with duplicate user ID")
			return apperrors.ErrUserIDExists
		}
		logger.Error().Err(err).Str("userID", user.UserID).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user by natural key
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by storage-assigned id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// FindByEmailOrUserID retrieves a user matching either key
func (r *UserRepository) FindByEmailOrUserID(ctx context.Context, email, userID string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR user_id = $2 LIMIT 1`, email, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	return user, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// UpdateByUserID applies a partial update keyed by the natural key
func (r *UserRepository) UpdateByUserID(ctx context.Context, userID string, fields map[string]interface{}) (*models.User, error) {
	return r.update(ctx, squirrel.Eq{"user_id": userID}, fields, func() (*models.User, error) {
		return r.GetByUserID(ctx, userID)
	})
}

// UpdateByID applies a partial update keyed by the storage-assigned id
func (r *UserRepository) UpdateByID(ctx context.Context, id int64, fields map[string]interface{}) (*models.User, error) {
	return r.update(ctx, squirrel.Eq{"id": id}, fields, func() (*models.User, error) {
		return r.GetByID(ctx, id)
	})
}

func (r *UserRepository) update(ctx context.Context, where squirrel.Eq, fields map[string]interface{}, current func() (*models.User, error)) (*models.User, error) {
	// An empty update still reports not-found for a missing key.
	if len(fields) == 0 {
		return current()
	}

	sql, args, err := r.sb.Update("users").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(where).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing update user query")
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

// DeleteByUserID removes a user by natural key
func (r *UserRepository) DeleteByUserID(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteByID removes a user by storage-assigned id
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Count returns the number of user records
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
