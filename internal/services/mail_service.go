package services

import (
	"context"
	"fmt"

	"github.com/RPleshkov/SessionVault/domain"
)

// MailServiceImpl implements domain.MailService
type MailServiceImpl struct {
	userRepo        domain.UserRepository
	confirmationSvc domain.ConfirmationService
	notificationSvc domain.NotificationService
}

// NewMailService creates a new mail service
func NewMailService(
	userRepo domain.UserRepository,
	confirmationSvc domain.ConfirmationService,
	notificationSvc domain.NotificationService,
) domain.MailService {
	return &MailServiceImpl{
		userRepo:        userRepo,
		confirmationSvc: confirmationSvc,
		notificationSvc: notificationSvc,
	}
}

// RequestConfirmationCode implements domain.MailService. Unknown emails
// return nil so the endpoint cannot be used to enumerate accounts.
func (s *MailServiceImpl) RequestConfirmationCode(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsVerified {
		return domain.ErrEmailAlreadyConfirmed
	}

	code, err := s.confirmationSvc.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to issue confirmation code: %w", err)
	}

	body := fmt.Sprintf("Hi %s, your confirmation code is %s.", user.Name, code)
	if err := s.notificationSvc.SendEmail(user.Email, "Confirm your registration", body); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

// ConfirmEmail implements domain.MailService
func (s *MailServiceImpl) ConfirmEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsVerified {
		return domain.ErrEmailAlreadyConfirmed
	}

	if err := s.confirmationSvc.Verify(ctx, email, code); err != nil {
		return err
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err := s.confirmationSvc.Clear(ctx, email); err != nil {
		return fmt.Errorf("failed to clear confirmation code: %w", err)
	}

	return nil
}
