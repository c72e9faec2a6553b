package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token:blacklist:jti:"

// TokenBlacklist revokes tokens before their natural expiry, used by
// logout. Entries only need to live as long as the token itself, so
// callers pass the token's remaining TTL.
type TokenBlacklist interface {
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist stores revoked jtis as expiring Redis keys so
// revocations are visible to every server instance
type RedisTokenBlacklist struct {
	client *redis.Client
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// NewRedisTokenBlacklist wraps an existing Redis client
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// Close releases the underlying Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

// InMemoryTokenBlacklist keeps revocations in process memory. Entries
// vanish on restart and are not shared between instances, so it only
// suits tests and single-instance deployments.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)

// NewInMemoryTokenBlacklist creates an empty in-process blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{expires: make(map[string]time.Time)}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expires[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted reports whether the jti is revoked; expired entries are
// removed lazily on lookup
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	deadline, ok := b.expires[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(b.expires, jti)
		return false, nil
	}
	return true, nil
}
