package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChallenge() *Challenge {
	return &Challenge{
		Address:   "rAlice123",
		PublicKey: "02a1b2c3",
		IssuedAt:  1700000000,
		ExpiresAt: 1700003600,
		Nonce:     "deadbeefdeadbeefdeadbeefdeadbeef",
		Claims:    []string{"wallet_ownership"},
	}
}

func TestCanonicalPayloadDeterministic(t *testing.T) {
	c := sampleChallenge()

	first, err := c.CanonicalPayload()
	require.NoError(t, err)
	second, err := c.CanonicalPayload()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Keys sorted, compact separators, integer timestamps.
	assert.JSONEq(t, `{
		"address": "rAlice123",
		"claims": ["wallet_ownership"],
		"expires_at": 1700003600,
		"issued_at": 1700000000,
		"nonce": "deadbeefdeadbeefdeadbeefdeadbeef",
		"public_key": "02a1b2c3"
	}`, string(first))
	assert.NotContains(t, string(first), " ")
}

func TestHashChangesWithAnyField(t *testing.T) {
	base, err := sampleChallenge().Hash()
	require.NoError(t, err)
	require.Len(t, base, 64)

	mutations := map[string]func(*Challenge){
		"address":    func(c *Challenge) { c.Address = "rBob456" },
		"public key": func(c *Challenge) { c.PublicKey = "02ffffff" },
		"issued at":  func(c *Challenge) { c.IssuedAt++ },
		"expires at": func(c *Challenge) { c.ExpiresAt++ },
		"nonce":      func(c *Challenge) { c.Nonce = "cafecafecafecafecafecafecafecafe" },
		"claims":     func(c *Challenge) { c.Claims = append(c.Claims, "age_over_18") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := sampleChallenge()
			mutate(c)
			mutated, err := c.Hash()
			require.NoError(t, err)
			assert.NotEqual(t, base, mutated)
		})
	}
}

func TestParseChallengePayloadRoundTrip(t *testing.T) {
	c := sampleChallenge()
	payload, err := c.CanonicalPayload()
	require.NoError(t, err)

	parsed, err := ParseChallengePayload(string(payload))
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	// Re-serialization of the parsed challenge hashes identically.
	original, err := c.Hash()
	require.NoError(t, err)
	reparsed, err := parsed.Hash()
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestParseChallengePayloadRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"not json":   "not-json",
		"no address": `{"claims":[],"expires_at":2,"issued_at":1,"nonce":"n","public_key":""}`,
		"no nonce":   `{"address":"rAlice123","claims":[],"expires_at":2,"issued_at":1,"public_key":""}`,
		"no expiry":  `{"address":"rAlice123","claims":[],"issued_at":1,"nonce":"n","public_key":""}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseChallengePayload(payload)
			assert.Error(t, err)
		})
	}
}

func TestExpired(t *testing.T) {
	c := sampleChallenge()

	assert.False(t, c.Expired(time.Unix(c.ExpiresAt, 0)))
	assert.True(t, c.Expired(time.Unix(c.ExpiresAt+1, 0)))
}

func TestSigningArtifactCommitsToHash(t *testing.T) {
	a, err := SigningArtifact("rAlice123", "nonce-1", "hash-1")
	require.NoError(t, err)
	b, err := SigningArtifact("rAlice123", "nonce-1", "hash-2")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Contains(t, string(a), "nonce-1")
	assert.Contains(t, string(a), "hash-1")
}
