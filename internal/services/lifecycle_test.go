package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RPleshkov/SessionVault/domain"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/auth"
	"github.com/RPleshkov/SessionVault/internal/infrastructure/repositories"
	"github.com/RPleshkov/SessionVault/internal/mocks"
)

// lifecycleEnv wires the real repositories, token service and password
// hashing against sqlite and miniredis, leaving only email delivery mocked.
type lifecycleEnv struct {
	auth     domain.AuthService
	userRepo domain.UserRepository
	sessions domain.SessionRepository
}

func newLifecycleEnv(t *testing.T, sessionLimit int) *lifecycleEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.DBUser{}, &repositories.DBSession{}))

	client, _ := setupTestRedis(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokenSvc := auth.NewJWTService(privateKey, &privateKey.PublicKey, 15*time.Minute, 720*time.Hour)

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	authSvc := NewAuthService(
		userRepo,
		sessionRepo,
		repositories.NewRevocationRegistry(client),
		auth.NewPasswordService(),
		tokenSvc,
		mocks.NewMockNotificationService(),
		AuthConfig{SessionLimit: sessionLimit, AccessTokenTTL: 15 * time.Minute},
	)

	return &lifecycleEnv{auth: authSvc, userRepo: userRepo, sessions: sessionRepo}
}

func (e *lifecycleEnv) registerAndLogin(t *testing.T, agent string) *domain.TokenPair {
	t.Helper()
	ctx := context.Background()
	if _, err := e.userRepo.FindByEmail(ctx, "bob@example.com"); err == domain.ErrUserNotFound {
		_, err = e.auth.Register(ctx, "Bob", "bob@example.com", "s3cret-pass")
		require.NoError(t, err)
	}
	pair, err := e.auth.Login(ctx, "bob@example.com", "s3cret-pass", agent)
	require.NoError(t, err)
	return pair
}

func TestLifecycle_SessionLimitEviction(t *testing.T) {
	env := newLifecycleEnv(t, 2)
	ctx := context.Background()

	first := env.registerAndLogin(t, "laptop")
	second := env.registerAndLogin(t, "phone")
	third := env.registerAndLogin(t, "tablet")

	user, err := env.auth.ValidateAccessToken(ctx, third.AccessToken)
	require.NoError(t, err)

	sessions, err := env.sessions.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	survivors := []string{sessions[0].SessionID, sessions[1].SessionID}
	assert.ElementsMatch(t, []string{second.SessionID, third.SessionID}, survivors)

	// the evicted session's refresh token is dead
	_, err = env.auth.Refresh(ctx, first.RefreshToken, "laptop")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// the survivors still authenticate
	_, err = env.auth.ValidateAccessToken(ctx, second.AccessToken)
	assert.NoError(t, err)
	_, err = env.auth.Refresh(ctx, third.RefreshToken, "tablet")
	assert.NoError(t, err)
}

func TestLifecycle_LogoutRevokesAccessImmediately(t *testing.T) {
	env := newLifecycleEnv(t, 5)
	ctx := context.Background()

	pair := env.registerAndLogin(t, "laptop")

	_, err := env.auth.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, pair.AccessToken))

	// the token itself is still within its lifetime, but the session id
	// now sits on the denylist
	_, err = env.auth.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = env.auth.Refresh(ctx, pair.RefreshToken, "laptop")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLifecycle_RefreshIsSingleUse(t *testing.T) {
	env := newLifecycleEnv(t, 5)
	ctx := context.Background()

	pair := env.registerAndLogin(t, "laptop")

	rotated, err := env.auth.Refresh(ctx, pair.RefreshToken, "laptop")
	require.NoError(t, err)
	assert.NotEqual(t, pair.SessionID, rotated.SessionID)

	// the superseded refresh token no longer matches any session row
	_, err = env.auth.Refresh(ctx, pair.RefreshToken, "laptop")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// the rotated one keeps working
	again, err := env.auth.Refresh(ctx, rotated.RefreshToken, "laptop")
	require.NoError(t, err)
	assert.NotEqual(t, rotated.SessionID, again.SessionID)
}

func TestLifecycle_RefreshDoesNotGrowSessionCount(t *testing.T) {
	env := newLifecycleEnv(t, 2)
	ctx := context.Background()

	pair := env.registerAndLogin(t, "laptop")
	user, err := env.auth.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pair, err = env.auth.Refresh(ctx, pair.RefreshToken, "laptop")
		require.NoError(t, err)
	}

	sessions, err := env.sessions.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, pair.SessionID, sessions[0].SessionID)
}

func TestLifecycle_LogoutOthersKeepsOnlyCaller(t *testing.T) {
	env := newLifecycleEnv(t, 5)
	ctx := context.Background()

	laptop := env.registerAndLogin(t, "laptop")
	phone := env.registerAndLogin(t, "phone")
	tablet := env.registerAndLogin(t, "tablet")

	require.NoError(t, env.auth.LogoutOthers(ctx, phone.AccessToken))

	_, err := env.auth.ValidateAccessToken(ctx, phone.AccessToken)
	assert.NoError(t, err)

	for _, other := range []*domain.TokenPair{laptop, tablet} {
		_, err = env.auth.ValidateAccessToken(ctx, other.AccessToken)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		_, err = env.auth.Refresh(ctx, other.RefreshToken, "any")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	}
}

func TestLifecycle_DeactivatedUserLosesAccess(t *testing.T) {
	env := newLifecycleEnv(t, 5)
	ctx := context.Background()

	pair := env.registerAndLogin(t, "laptop")
	user, err := env.auth.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.userRepo.SetActive(ctx, user.ID, false))

	_, err = env.auth.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
	_, err = env.auth.Refresh(ctx, pair.RefreshToken, "laptop")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
	_, err = env.auth.Login(ctx, "bob@example.com", "s3cret-pass", "laptop")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}
