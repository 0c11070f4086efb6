package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RPleshkov/SessionVault/domain"
)

// ConfirmationServiceImpl implements domain.ConfirmationService using Redis
// persistence. Codes expire via the store's native TTL.
type ConfirmationServiceImpl struct {
	redisClient *redis.Client
	config      ConfirmationConfig
}

type ConfirmationConfig struct {
	Length int
	TTL    time.Duration
}

const confirmationKeyPrefix = "confirmation_code:"

// NewConfirmationService creates a new Redis-based confirmation code service
func NewConfirmationService(redisClient *redis.Client, config ConfirmationConfig) domain.ConfirmationService {
	return &ConfirmationServiceImpl{
		redisClient: redisClient,
		config:      config,
	}
}

// Issue implements domain.ConfirmationService. Any previously issued code for
// the email is invalidated before the new one is stored.
func (s *ConfirmationServiceImpl) Issue(ctx context.Context, email string) (string, error) {
	key := confirmationKeyPrefix + email

	code, err := s.generateSecureCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return "", fmt.Errorf("failed to invalidate previous code: %w", err)
	}
	if err := s.redisClient.Set(ctx, key, code, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store confirmation code: %w", err)
	}

	return code, nil
}

// Verify implements domain.ConfirmationService
func (s *ConfirmationServiceImpl) Verify(ctx context.Context, email, code string) error {
	key := confirmationKeyPrefix + email

	stored, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return domain.ErrConfirmationCodeExpired
	}
	if err != nil {
		return fmt.Errorf("failed to get confirmation code: %w", err)
	}

	if stored != code {
		return domain.ErrConfirmationCodeInvalid
	}

	return nil
}

// Clear implements domain.ConfirmationService
func (s *ConfirmationServiceImpl) Clear(ctx context.Context, email string) error {
	return s.redisClient.Del(ctx, confirmationKeyPrefix+email).Err()
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *ConfirmationServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
