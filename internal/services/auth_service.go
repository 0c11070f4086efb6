package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RPleshkov/SessionVault/domain"
)

// AuthConfig carries the lifecycle values the engine depends on.
type AuthConfig struct {
	// SessionLimit is the maximum number of concurrent sessions per user.
	// Logging in at the limit evicts the least recently active session.
	SessionLimit int
	// AccessTokenTTL sizes revocation entries so a denylisted session id
	// outlives the access token it invalidates.
	AccessTokenTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService. It orchestrates the token
// codec, session store and revocation registry; it owns no state of its own.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	sessionRepo     domain.SessionRepository
	revocations     domain.RevocationRegistry
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	config          AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	revocations domain.RevocationRegistry,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		revocations:     revocations,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome mail is best-effort; registration already committed.
	if err := s.notificationSvc.SendEmail(user.Email, "Welcome!", fmt.Sprintf("Hi %s, your account has been created.", user.Name)); err != nil {
		log.Printf("WELCOME_EMAIL_FAILED: user_id=%s error=%v", user.ID, err)
	}

	return user, nil
}

// Login implements domain.AuthService. Counting, evicting and inserting are
// not serialized across requests; concurrent logins can transiently exceed
// the session limit by one per racer, and a later login trims back down.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, userAgent string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	pair, err := s.tokenSvc.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) >= s.config.SessionLimit {
		if err := s.sessionRepo.DeleteOldest(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	session := &domain.Session{
		UserID:     user.ID,
		SessionID:  pair.SessionID,
		UserAgent:  userAgent,
		LastActive: pair.IssuedAt,
		ExpiresAt:  pair.RefreshExpiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return pair, nil
}

// Logout implements domain.AuthService. The denylist entry lives for the full
// access-token lifetime, so it always covers the token being invalidated.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokenSvc.Parse(accessToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	if err := s.revocations.Revoke(ctx, claims.SessionID, s.config.AccessTokenTTL); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if err := s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// LogoutOthers implements domain.AuthService. Every session of the caller's
// user except the caller's own is revoked and removed.
func (s *AuthServiceImpl) LogoutOthers(ctx context.Context, accessToken string) error {
	claims, err := s.tokenSvc.Parse(accessToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		if session.SessionID == claims.SessionID {
			continue
		}
		if err := s.revocations.Revoke(ctx, session.SessionID, s.config.AccessTokenTTL); err != nil {
			return fmt.Errorf("failed to revoke session: %w", err)
		}
		if err := s.sessionRepo.Delete(ctx, session.SessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	return nil
}

// Refresh implements domain.AuthService. The session row is rotated in place:
// new session id, same record, so the per-user session count never grows on
// refresh. The previous access token stays usable until it expires on its
// own; only the session row lookup makes the previous refresh token dead.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken, userAgent string) (*domain.TokenPair, error) {
	claims, err := s.tokenSvc.Parse(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Purpose != domain.PurposeRefreshToken {
		return nil, domain.ErrTokenInvalid
	}

	// Row absence means logged out or already refreshed; refresh tokens are
	// single-use per session generation.
	if _, err := s.sessionRepo.FindBySessionID(ctx, claims.SessionID); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.getActiveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokenSvc.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	if err := s.sessionRepo.Replace(ctx, claims.SessionID, pair.SessionID, userAgent, pair.IssuedAt, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to replace session: %w", err)
	}

	return pair, nil
}

// ValidateAccessToken implements domain.AuthService. Revocation is layered
// here, above the codec: a cryptographically valid token for a denylisted
// session id is rejected all the same.
func (s *AuthServiceImpl) ValidateAccessToken(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenSvc.Parse(accessToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Purpose != domain.PurposeAccessToken {
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenInvalid
	}

	return s.getActiveUser(ctx, claims.Subject)
}

func (s *AuthServiceImpl) getActiveUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}
