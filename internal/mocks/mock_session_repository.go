package mocks

import (
	"context"
	"time"

	"github.com/RPleshkov/SessionVault/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc          func(ctx context.Context, session *domain.Session) error
	FindBySessionIDFunc func(ctx context.Context, sessionID string) (*domain.Session, error)
	ListByUserFunc      func(ctx context.Context, userID string) ([]domain.Session, error)
	ReplaceFunc         func(ctx context.Context, oldSessionID, newSessionID, userAgent string, lastActive, expiresAt time.Time) error
	DeleteFunc          func(ctx context.Context, sessionID string) error
	DeleteOldestFunc    func(ctx context.Context, userID string) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create creates a new session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindBySessionID finds a session by its session id
func (m *MockSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindBySessionIDFunc != nil {
		return m.FindBySessionIDFunc(ctx, sessionID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// ListByUser lists a user's sessions ordered by ascending last-active
func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	// Default behavior: no sessions
	return nil, nil
}

// Replace rotates a session row in place
func (m *MockSessionRepository) Replace(ctx context.Context, oldSessionID, newSessionID, userAgent string, lastActive, expiresAt time.Time) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, oldSessionID, newSessionID, userAgent, lastActive, expiresAt)
	}
	// Default behavior: success
	return nil
}

// Delete deletes a session by its session id
func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// DeleteOldest deletes the user's least recently active session
func (m *MockSessionRepository) DeleteOldest(ctx context.Context, userID string) error {
	if m.DeleteOldestFunc != nil {
		return m.DeleteOldestFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
