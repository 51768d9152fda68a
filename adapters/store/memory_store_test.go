package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryConsumeSingleUse(t *testing.T) {
	s := NewMemoryNonceStore()
	ctx := context.Background()

	ok, err := s.TryConsume(ctx, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.TryConsume(ctx, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different nonce is unaffected.
	ok, err = s.TryConsume(ctx, "nonce-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTryConsumeConcurrentSingleWinner(t *testing.T) {
	s := NewMemoryNonceStore()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.TryConsume(ctx, "contested", time.Minute)
			assert.NoError(t, err)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestTryConsumeExpiresRecord(t *testing.T) {
	s := NewMemoryNonceStore()
	ctx := context.Background()

	ok, err := s.TryConsume(ctx, "short-lived", 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	// The window has passed; the nonce may be consumed again. The challenge
	// it belonged to is long expired by then, so this is safe.
	ok, err = s.TryConsume(ctx, "short-lived", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
