package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/jmdelacruz/sis-backend/internal/app/models"
	appRepos "github.com/jmdelacruz/sis-backend/internal/app/repositories"
	"github.com/jmdelacruz/sis-backend/internal/config"
	"github.com/jmdelacruz/sis-backend/internal/pkg/auth"
)

// CreateDefaultAdmin seeds an initial admin account when the users
// collection is empty, so the console has a first login. No-op otherwise.
func CreateDefaultAdmin(ctx context.Context, repos *appRepos.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	count, err := repos.UserRepository.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping default admin creation")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &appModels.User{
		UserID:    cfg.Seed.AdminUserID,
		FirstName: "System",
		LastName:  "Administrator",
		Email:     cfg.Seed.AdminEmail,
		Password:  hashed,
		Role:      appModels.RoleAdmin,
	}

	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Str("userID", admin.UserID).Str("email", admin.Email).Msg("Default admin user created")
	return nil
}
