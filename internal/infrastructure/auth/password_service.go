package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/RPleshkov/SessionVault/domain"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{
		cost: bcrypt.DefaultCost,
	}
}

// Hash implements domain.PasswordService. bcrypt salts internally, so two
// hashes of the same password never match.
func (p *PasswordServiceImpl) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), p.cost)
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
