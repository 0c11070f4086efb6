package mocks

import (
	"github.com/RPleshkov/SessionVault/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssuePairFunc func(userID, role string) (*domain.TokenPair, error)
	ParseFunc     func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssuePair mints a token pair
func (m *MockTokenService) IssuePair(userID, role string) (*domain.TokenPair, error) {
	if m.IssuePairFunc != nil {
		return m.IssuePairFunc(userID, role)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Parse parses a token
func (m *MockTokenService) Parse(token string) (*domain.TokenClaims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
