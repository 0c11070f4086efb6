package mocks

import (
	"context"

	"github.com/RPleshkov/SessionVault/domain"
)

// MockConfirmationService implements domain.ConfirmationService interface for testing
type MockConfirmationService struct {
	IssueFunc  func(ctx context.Context, email string) (string, error)
	VerifyFunc func(ctx context.Context, email, code string) error
	ClearFunc  func(ctx context.Context, email string) error
}

// NewMockConfirmationService creates a new MockConfirmationService with default behaviors
func NewMockConfirmationService() *MockConfirmationService {
	return &MockConfirmationService{}
}

// Issue issues a fresh confirmation code
func (m *MockConfirmationService) Issue(ctx context.Context, email string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	// Default behavior: fixed code
	return "123456", nil
}

// Verify verifies a confirmation code
func (m *MockConfirmationService) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	// Default behavior: matches the Issue default
	if code != "123456" {
		return domain.ErrConfirmationCodeInvalid
	}
	return nil
}

// Clear deletes any stored code for the email
func (m *MockConfirmationService) Clear(ctx context.Context, email string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ConfirmationService = (*MockConfirmationService)(nil)
