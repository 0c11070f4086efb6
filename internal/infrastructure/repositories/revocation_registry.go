package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RPleshkov/SessionVault/domain"
)

// RevocationRegistryImpl implements domain.RevocationRegistry using Redis.
// Entries expire via Redis' native TTL; nothing sweeps them.
type RevocationRegistryImpl struct {
	client *redis.Client
	prefix string
}

// NewRevocationRegistry creates a new revocation registry
func NewRevocationRegistry(client *redis.Client) domain.RevocationRegistry {
	return &RevocationRegistryImpl{
		client: client,
		prefix: "blacklist_access_token:",
	}
}

// Revoke implements domain.RevocationRegistry
func (r *RevocationRegistryImpl) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+sessionID, "revoked", ttl).Err()
}

// IsRevoked implements domain.RevocationRegistry
func (r *RevocationRegistryImpl) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.client.Get(ctx, r.prefix+sessionID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
