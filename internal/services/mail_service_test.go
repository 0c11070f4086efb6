package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RPleshkov/SessionVault/domain"
	"github.com/RPleshkov/SessionVault/internal/mocks"
)

func unverifiedUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Name:     "Alice",
		Email:    "alice@example.com",
		Role:     domain.RoleUser,
		IsActive: true,
	}
}

func TestMailServiceImpl_RequestConfirmationCode(t *testing.T) {
	t.Run("sends a code to an unverified user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return unverifiedUser(), nil
		}
		notifications := mocks.NewMockNotificationService()
		svc := NewMailService(userRepo, mocks.NewMockConfirmationService(), notifications)

		if err := svc.RequestConfirmationCode(context.Background(), "alice@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifications.SentEmails) != 1 {
			t.Fatalf("expected 1 email, got %d", len(notifications.SentEmails))
		}
		sent := notifications.SentEmails[0]
		if sent.To != "alice@example.com" {
			t.Errorf("expected delivery to alice@example.com, got %q", sent.To)
		}
		if !strings.Contains(sent.Body, "123456") {
			t.Errorf("expected the code in the body, got %q", sent.Body)
		}
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		notifications := mocks.NewMockNotificationService()
		svc := NewMailService(mocks.NewMockUserRepository(), mocks.NewMockConfirmationService(), notifications)

		if err := svc.RequestConfirmationCode(context.Background(), "nobody@example.com"); err != nil {
			t.Fatalf("expected nil for unknown email, got %v", err)
		}
		if len(notifications.SentEmails) != 0 {
			t.Errorf("expected no email for unknown address, got %d", len(notifications.SentEmails))
		}
	})

	t.Run("already confirmed email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			u := unverifiedUser()
			u.IsVerified = true
			return u, nil
		}
		svc := NewMailService(userRepo, mocks.NewMockConfirmationService(), mocks.NewMockNotificationService())

		err := svc.RequestConfirmationCode(context.Background(), "alice@example.com")
		if err != domain.ErrEmailAlreadyConfirmed {
			t.Errorf("expected ErrEmailAlreadyConfirmed, got %v", err)
		}
	})
}

func TestMailServiceImpl_ConfirmEmail(t *testing.T) {
	t.Run("valid code marks the user verified and clears the code", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return unverifiedUser(), nil
		}
		var verifiedID string
		userRepo.MarkVerifiedFunc = func(ctx context.Context, userID string) error {
			verifiedID = userID
			return nil
		}
		confirmations := mocks.NewMockConfirmationService()
		var cleared bool
		confirmations.ClearFunc = func(ctx context.Context, email string) error {
			cleared = true
			return nil
		}
		svc := NewMailService(userRepo, confirmations, mocks.NewMockNotificationService())

		if err := svc.ConfirmEmail(context.Background(), "alice@example.com", "123456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if verifiedID != "user-1" {
			t.Errorf("expected user-1 marked verified, got %q", verifiedID)
		}
		if !cleared {
			t.Error("expected the stored code to be cleared")
		}
	})

	t.Run("wrong code leaves the user unverified", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return unverifiedUser(), nil
		}
		var verified bool
		userRepo.MarkVerifiedFunc = func(ctx context.Context, userID string) error {
			verified = true
			return nil
		}
		svc := NewMailService(userRepo, mocks.NewMockConfirmationService(), mocks.NewMockNotificationService())

		err := svc.ConfirmEmail(context.Background(), "alice@example.com", "999999")
		if !errors.Is(err, domain.ErrConfirmationCodeInvalid) {
			t.Fatalf("expected ErrConfirmationCodeInvalid, got %v", err)
		}
		if verified {
			t.Error("user must not be verified on a wrong code")
		}
	})

	t.Run("expired code", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return unverifiedUser(), nil
		}
		confirmations := mocks.NewMockConfirmationService()
		confirmations.VerifyFunc = func(ctx context.Context, email, code string) error {
			return domain.ErrConfirmationCodeExpired
		}
		svc := NewMailService(userRepo, confirmations, mocks.NewMockNotificationService())

		err := svc.ConfirmEmail(context.Background(), "alice@example.com", "123456")
		if !errors.Is(err, domain.ErrConfirmationCodeExpired) {
			t.Errorf("expected ErrConfirmationCodeExpired, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewMailService(mocks.NewMockUserRepository(), mocks.NewMockConfirmationService(), mocks.NewMockNotificationService())

		err := svc.ConfirmEmail(context.Background(), "nobody@example.com", "123456")
		if err != domain.ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("already confirmed email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			u := unverifiedUser()
			u.IsVerified = true
			return u, nil
		}
		svc := NewMailService(userRepo, mocks.NewMockConfirmationService(), mocks.NewMockNotificationService())

		err := svc.ConfirmEmail(context.Background(), "alice@example.com", "123456")
		if err != domain.ErrEmailAlreadyConfirmed {
			t.Errorf("expected ErrEmailAlreadyConfirmed, got %v", err)
		}
	})
}
