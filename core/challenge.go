package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// SigningMode selects how challenge signatures are produced. Mock is only
// acceptable in test deployments and is always distinguishable from a real
// signature.
type SigningMode string

const (
	SigningModeReal SigningMode = "real"
	SigningModeMock SigningMode = "mock"
)

// MockSignaturePrefix tags signatures produced in Mock mode. A verifier
// configured for production rejects anything carrying this prefix.
const MockSignaturePrefix = "MOCK_SIGNATURE_"

// DefaultChallengeTTL is how long a challenge stays valid once issued.
const DefaultChallengeTTL = time.Hour

// Challenge is a time-boxed, nonce-bearing payload a holder must sign to
// prove possession of the key behind a ledger address.
type Challenge struct {
	Address   string   // Ledger account the challenge is bound to
	PublicKey string   // Hex-encoded public key of the holder, optional
	IssuedAt  int64    // Unix seconds
	ExpiresAt int64    // Unix seconds, always after IssuedAt
	Nonce     string   // Hex-encoded random token, single use
	Claims    []string // Claim names the verifier will assert on success
}

// CanonicalPayload serializes the challenge deterministically: JSON with
// sorted keys, compact separators, and integer timestamps. Issuer and
// verifier must produce byte-identical output for the same fields.
func (c *Challenge) CanonicalPayload() ([]byte, error) {
	claims := c.Claims
	if claims == nil {
		claims = []string{}
	}
	payload := map[string]interface{}{
		"address":    c.Address,
		"claims":     claims,
		"expires_at": c.ExpiresAt,
		"issued_at":  c.IssuedAt,
		"nonce":      c.Nonce,
		"public_key": c.PublicKey,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize challenge: %w", err)
	}
	return out, nil
}

// Hash returns the hex-encoded SHA-256 digest of the canonical payload.
func (c *Challenge) Hash() (string, error) {
	payload, err := c.CanonicalPayload()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *Challenge) Expired(now time.Time) bool {
	return now.Unix() > c.ExpiresAt
}

// IssuedAtTime returns the issuance timestamp as a time.Time.
func (c *Challenge) IssuedAtTime() time.Time {
	return time.Unix(c.IssuedAt, 0)
}

// ExpiresAtTime returns the expiry timestamp as a time.Time.
func (c *Challenge) ExpiresAtTime() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// ParseChallengePayload decodes a canonical challenge string back into a
// Challenge. The input must carry every required field.
func ParseChallengePayload(payload string) (*Challenge, error) {
	var raw struct {
		Address   string   `json:"address"`
		Claims    []string `json:"claims"`
		ExpiresAt int64    `json:"expires_at"`
		IssuedAt  int64    `json:"issued_at"`
		Nonce     string   `json:"nonce"`
		PublicKey string   `json:"public_key"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("malformed challenge payload: %w", ErrInvalidChallenge)
	}
	if raw.Address == "" || raw.Nonce == "" || raw.IssuedAt == 0 || raw.ExpiresAt == 0 {
		return nil, ErrMissingField
	}
	return &Challenge{
		Address:   raw.Address,
		PublicKey: raw.PublicKey,
		IssuedAt:  raw.IssuedAt,
		ExpiresAt: raw.ExpiresAt,
		Nonce:     raw.Nonce,
		Claims:    raw.Claims,
	}, nil
}

// SigningArtifact builds the inert byte payload the holder's key signs. It
// embeds the nonce and the payload hash so the signature commits to the
// whole challenge without signing a real ledger transaction.
func SigningArtifact(address, nonce, payloadHash string) ([]byte, error) {
	artifact := map[string]interface{}{
		"account":      address,
		"nonce":        nonce,
		"payload_hash": payloadHash,
	}
	out, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to build signing artifact: %w", err)
	}
	return out, nil
}

// ChallengeResponse is what a holder submits back for verification.
type ChallengeResponse struct {
	Challenge      string `json:"challenge"`       // Canonical challenge payload as issued
	ChallengeHash  string `json:"challenge_hash"`  // Hash claimed by the holder
	Signature      string `json:"signature"`       // Holder signature over the signing artifact
	DID            string `json:"did"`             // DID claimed by the holder
	ChallengeToken string `json:"challenge_token"` // Issuer attestation envelope, optional
}
