package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
)

// IssuerConfig carries the explicit configuration for challenge issuance.
// No module-level defaults: every instance gets its own copy.
type IssuerConfig struct {
	DIDMethod    string           // DID method namespace, e.g. "xrpl"
	ChallengeTTL time.Duration    // How long issued challenges stay valid
	NonceBytes   int              // Entropy of the nonce, minimum 16
	SigningMode  core.SigningMode // Real or Mock; governs the degrade path
	ServiceURL   string           // Endpoint advertised in DID documents
}

func (c *IssuerConfig) withDefaults() IssuerConfig {
	out := *c
	if out.DIDMethod == "" {
		out.DIDMethod = core.DefaultDIDMethod
	}
	if out.ChallengeTTL <= 0 {
		out.ChallengeTTL = core.DefaultChallengeTTL
	}
	if out.NonceBytes < 16 {
		out.NonceBytes = 16
	}
	if out.SigningMode == "" {
		out.SigningMode = core.SigningModeReal
	}
	return out
}

// IssuedChallenge bundles everything handed back to the caller: the
// challenge itself, its canonical serialization and hash, the optional
// holder signature, and the issuer attestation envelope.
type IssuedChallenge struct {
	Challenge   *core.Challenge
	Canonical   string
	Hash        string
	Signature   string
	DID         string
	DIDDocument *core.DIDDocument
	Token       string
}

// Issuer builds time-bounded possession-proof challenges.
type Issuer struct {
	cfg       IssuerConfig
	signer    ports.Signer
	tokenizer ports.Tokenizer

	now func() time.Time
}

// NewIssuer creates a challenge issuer. The signer is optional: when nil the
// challenge is returned unsigned and the holder signs out-of-band.
func NewIssuer(cfg IssuerConfig, signer ports.Signer, tokenizer ports.Tokenizer) *Issuer {
	return &Issuer{
		cfg:       cfg.withDefaults(),
		signer:    signer,
		tokenizer: tokenizer,
		now:       time.Now,
	}
}

// IssueChallenge mints a fresh challenge for the given address and claim
// set. Address and at least one claim are required.
func (s *Issuer) IssueChallenge(address, publicKey string, claims []string) (*IssuedChallenge, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("subject address: %w", core.ErrMissingField)
	}
	if len(claims) == 0 {
		return nil, fmt.Errorf("requested claims: %w", core.ErrMissingField)
	}

	nonce, err := generateNonce(s.cfg.NonceBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := s.now()
	challenge := &core.Challenge{
		Address:   address,
		PublicKey: publicKey,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.cfg.ChallengeTTL).Unix(),
		Nonce:     nonce,
		Claims:    claims,
	}

	canonical, err := challenge.CanonicalPayload()
	if err != nil {
		return nil, err
	}
	hash, err := challenge.Hash()
	if err != nil {
		return nil, err
	}

	signature, err := s.signChallenge(address, nonce, hash)
	if err != nil {
		return nil, err
	}

	did := core.BuildDID(s.cfg.DIDMethod, address)

	var doc *core.DIDDocument
	if publicKey != "" {
		doc, err = core.GenerateDIDDocument(s.cfg.DIDMethod, address, publicKey, s.cfg.ServiceURL, now)
		if err != nil {
			return nil, err
		}
	}

	var token string
	if s.tokenizer != nil {
		token, err = s.tokenizer.ChallengeToToken(challenge)
		if err != nil {
			return nil, fmt.Errorf("failed to create challenge token: %w", err)
		}
	}

	return &IssuedChallenge{
		Challenge:   challenge,
		Canonical:   string(canonical),
		Hash:        hash,
		Signature:   signature,
		DID:         did,
		DIDDocument: doc,
		Token:       token,
	}, nil
}

// signChallenge signs the inert artifact with the holder key, if one is
// held locally. In Real mode a signer failure is an error, never a
// fabricated value; in Mock mode the degrade path produces an explicitly
// flagged mock signature.
func (s *Issuer) signChallenge(address, nonce, hash string) (string, error) {
	if s.signer == nil {
		return "", nil
	}

	artifact, err := core.SigningArtifact(address, nonce, hash)
	if err != nil {
		return "", err
	}

	signature, err := s.signer.Sign(artifact)
	if err != nil {
		if s.cfg.SigningMode == core.SigningModeMock {
			return core.MockSignaturePrefix + hash[:16], nil
		}
		return "", fmt.Errorf("%w: %v", core.ErrSigningUnavailable, err)
	}
	return signature, nil
}

func generateNonce(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
