package store

import (
	"context"
	"sync"
	"time"

	"github.com/veridian-labs/walletproof/ports"
)

// MemoryNonceStore is an in-memory implementation of the NonceStore
// interface for single-instance deployments and tests.
type MemoryNonceStore struct {
	consumed map[string]time.Time
	mu       sync.Mutex
}

// NewMemoryNonceStore creates a new in-memory nonce store.
func NewMemoryNonceStore() ports.NonceStore {
	return &MemoryNonceStore{
		consumed: make(map[string]time.Time),
	}
}

// TryConsume marks a nonce as used. The check and the insert happen under
// one lock, so only one caller can win a given nonce.
func (s *MemoryNonceStore) TryConsume(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expiry, exists := s.consumed[nonce]; exists && now.Before(expiry) {
		return false, nil
	}

	expiryTime := now.Add(ttl)
	s.consumed[nonce] = expiryTime

	// Drop the record once the challenge itself can no longer be valid.
	go func() {
		time.Sleep(ttl)

		s.mu.Lock()
		defer s.mu.Unlock()

		if storedExpiry, exists := s.consumed[nonce]; exists && !storedExpiry.After(expiryTime) {
			delete(s.consumed, nonce)
		}
	}()

	return true, nil
}
