package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/jmdelacruz/sis-backend/internal/app/models"
	appRepos "github.com/jmdelacruz/sis-backend/internal/app/repositories"
	"github.com/jmdelacruz/sis-backend/internal/config"
	"github.com/jmdelacruz/sis-backend/internal/pkg/auth"
)

func seedConfig(password string) *config.Config {
	cfg := &config.Config{}
	cfg.Seed.AdminUserID = "admin"
	cfg.Seed.AdminEmail = "admin@sis.local"
	cfg.Seed.AdminPassword = password
	return cfg
}

func testRepos() *appRepos.Repositories {
	return &appRepos.Repositories{
		UserRepository:    appRepos.NewInMemoryUserRepository(),
		StudentRepository: appRepos.NewInMemoryStudentRepository(),
	}
}

func TestCreateDefaultAdminSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := testRepos()

	require.NoError(t, CreateDefaultAdmin(ctx, repos, seedConfig("bootstrap-pass"), zerolog.Nop()))

	admin, err := repos.UserRepository.GetByUserID(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@sis.local", admin.Email)
	assert.Equal(t, appModels.RoleAdmin, admin.Role)

	ok, err := auth.CheckPassword(admin.Password, "bootstrap-pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateDefaultAdminSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := testRepos()

	existing := &appModels.User{
		UserID:    "u-100",
		FirstName: "Maria",
		LastName:  "Reyes",
		Email:     "maria@example.com",
		Password:  "hash",
	}
	require.NoError(t, repos.UserRepository.Create(ctx, existing))

	require.NoError(t, CreateDefaultAdmin(ctx, repos, seedConfig("bootstrap-pass"), zerolog.Nop()))

	count, err := repos.UserRepository.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateDefaultAdminSkipsWithoutPassword(t *testing.T) {
	ctx := context.Background()
	repos := testRepos()

	require.NoError(t, CreateDefaultAdmin(ctx, repos, seedConfig(""), zerolog.Nop()))

	count, err := repos.UserRepository.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
