package mocks

import (
	"context"
	"time"

	"github.com/RPleshkov/SessionVault/domain"
)

// MockRevocationRegistry implements domain.RevocationRegistry interface for testing
type MockRevocationRegistry struct {
	RevokeFunc    func(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevokedFunc func(ctx context.Context, sessionID string) (bool, error)
}

// NewMockRevocationRegistry creates a new MockRevocationRegistry with default behaviors
func NewMockRevocationRegistry() *MockRevocationRegistry {
	return &MockRevocationRegistry{}
}

// Revoke adds a session id to the denylist
func (m *MockRevocationRegistry) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, sessionID, ttl)
	}
	// Default behavior: success
	return nil
}

// IsRevoked reports whether a session id is denylisted
func (m *MockRevocationRegistry) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, sessionID)
	}
	// Default behavior: not revoked
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.RevocationRegistry = (*MockRevocationRegistry)(nil)
