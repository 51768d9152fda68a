package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veridian-labs/walletproof/ports"
)

// RedisNonceStore is a Redis implementation of the NonceStore interface for
// multi-instance deployments.
type RedisNonceStore struct {
	client *redis.Client
	prefix string
}

// NewRedisNonceStore creates a new Redis nonce store.
func NewRedisNonceStore(client *redis.Client) ports.NonceStore {
	return &RedisNonceStore{
		client: client,
		prefix: "walletproof:nonce:",
	}
}

// TryConsume marks a nonce as used via SET NX, which is atomic on the
// Redis side: exactly one caller observes true per nonce per TTL window.
func (s *RedisNonceStore) TryConsume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	key := s.prefix + nonce

	ok, err := s.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume nonce: %w", err)
	}

	return ok, nil
}
