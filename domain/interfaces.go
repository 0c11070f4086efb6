package domain

import (
	"context"
	"time"
)

// Token purpose discriminators. A token is only ever usable for the purpose it
// was minted with.
const (
	PurposeAccessToken  = "access_token"
	PurposeRefreshToken = "refresh_token"
)

// TokenClaims is the fixed set of claims carried by every signed token.
type TokenClaims struct {
	Subject   string
	SessionID string
	Role      string
	Purpose   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	MarkVerified(ctx context.Context, userID string) error
	SetActive(ctx context.Context, userID string, active bool) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindBySessionID(ctx context.Context, sessionID string) (*Session, error)
	// ListByUser returns the user's sessions ordered by ascending last-active,
	// oldest activity first.
	ListByUser(ctx context.Context, userID string) ([]Session, error)
	// Replace rotates the identified row in place. It is a no-op when the row
	// no longer exists; callers check existence first.
	Replace(ctx context.Context, oldSessionID, newSessionID, userAgent string, lastActive, expiresAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
	DeleteOldest(ctx context.Context, userID string) error
}

// RevocationRegistry defines the access-token denylist operations
type RevocationRegistry interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// AuthService defines the session lifecycle operations
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password, userAgent string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	LogoutOthers(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken, userAgent string) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, accessToken string) (*User, error)
}

// ConfirmationService defines one-time email confirmation code operations
type ConfirmationService interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
	Clear(ctx context.Context, email string) error
}

// MailService defines the email confirmation flow
type MailService interface {
	RequestConfirmationCode(ctx context.Context, email string) error
	ConfirmEmail(ctx context.Context, email, code string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) ([]byte, error)
	Verify(hash []byte, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	// IssuePair mints a fresh session id and returns a signed access/refresh
	// pair sharing that session id and a single issued-at instant.
	IssuePair(userID, role string) (*TokenPair, error)
	Parse(token string) (*TokenClaims, error)
}

// NotificationService defines outbound message delivery
type NotificationService interface {
	SendEmail(to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	ListPolicies() ([][]string, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
