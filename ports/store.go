package ports

import (
	"context"
	"time"
)

// NonceStore tracks consumed challenge nonces for replay protection.
type NonceStore interface {
	// TryConsume atomically marks a nonce as used. It returns true exactly
	// once per nonce within the TTL window; concurrent callers race on a
	// single check-and-set, never on separate check and set steps.
	TryConsume(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}
