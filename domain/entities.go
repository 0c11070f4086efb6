package domain

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents one logged-in device. SessionID rotates on refresh while
// the record itself is reused; LastActive orders a user's sessions for eviction.
type Session struct {
	ID         uint
	UserID     string
	SessionID  string
	UserAgent  string
	LastActive time.Time
	ExpiresAt  time.Time
}

// TokenPair is the pair of signed tokens returned by login and refresh. Both
// tokens carry the same session id and issued-at.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	SessionID        string
	IssuedAt         time.Time
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
