package mocks

import (
	"github.com/RPleshkov/SessionVault/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) ([]byte, error)
	VerifyFunc func(hash []byte, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) ([]byte, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: prefix marker
	return []byte("hashed_" + password), nil
}

// Verify verifies a password against a hash
func (m *MockPasswordService) Verify(hash []byte, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hash, password)
	}
	// Default behavior: matches the Hash default
	return string(hash) == "hashed_"+password
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
