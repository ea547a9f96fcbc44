package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmdelacruz/sis-backend/internal/app/models"
	"github.com/jmdelacruz/sis-backend/internal/app/models/dto"
	"github.com/jmdelacruz/sis-backend/internal/app/repositories"
	"github.com/jmdelacruz/sis-backend/internal/pkg/apperrors"
	"github.com/jmdelacruz/sis-backend/internal/pkg/auth"
	"github.com/jmdelacruz/sis-backend/internal/pkg/validation"
)

// UserService handles user registration, login and CRUD flows
type UserService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:         user.ID,
		UserID:     user.UserID,
		FirstName:  user.FirstName,
		MiddleName: user.MiddleName,
		LastName:   user.LastName,
		Email:      user.Email,
		Role:       user.Role,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// Register creates a new user account. The email/userId pre-check gives a
// friendly error naming the colliding field; the store's unique constraints
// remain the authoritative duplicate signal under races.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	result := validation.Require(validation.Fields{
		"userId":    req.UserID,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		"password":  req.Password,
	})
	if !result.IsValid {
		return nil, apperrors.NewValidationError(result.RequiredFields)
	}

	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, apperrors.ErrInvalidRole
	}

	email := strings.ToLower(req.Email)

	existing, err := s.userRepo.FindByEmailOrUserID(ctx, email, req.UserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if existing != nil {
		if existing.Email == email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrUserIDExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:     req.UserID,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Email:      email,
		Password:   hashedPassword,
		Role:       req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.UserID).Str("email", user.Email).Msg("User registered")

	resp := toUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a session token. A missing account
// and a wrong password are reported as distinct failures.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}

	ok, err := auth.CheckPassword(user.Password, req.Password)
	if err != nil {
		// A malformed stored hash is corruption, not a credential problem.
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Stored password hash could not be verified")
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("User logged in")

	return &dto.LoginResponse{
		Message:   "Login successful",
		User:      toUserResponse(user),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// List returns all users, sanitized
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

// GetByUserID returns a sanitized user looked up by natural key
func (s *UserService) GetByUserID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// GetByID returns a sanitized user looked up by storage-assigned id
func (s *UserService) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// updateFields builds the column map from the allow-listed request fields.
// The natural key has no entry here, so it can never change through an
// update. A provided password is re-hashed before it is stored.
func (s *UserService) updateFields(req *dto.UpdateUserRequest) (map[string]interface{}, error) {
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
	if req.Email != nil {
		fields["email"] = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		if *req.Role != "" && !models.ValidRole(*req.Role) {
			return nil, apperrors.ErrInvalidRole
		}
		fields["role"] = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}
	return fields, nil
}

// UpdateByUserID applies a partial update keyed by the natural key
func (s *UserService) UpdateByUserID(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields, err := s.updateFields(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateByUserID(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID).Msg("User updated")
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateByID applies a partial update keyed by the storage-assigned id
func (s *UserService) UpdateByID(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields, err := s.updateFields(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Msg("User updated")
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteByUserID removes a user by natural key
func (s *UserService) DeleteByUserID(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("userID", userID).Msg("User deleted")
	return nil
}

// DeleteByID removes a user by storage-assigned id
func (s *UserService) DeleteByID(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("User deleted")
	return nil
}
