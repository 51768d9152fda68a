package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
)

// VerifierConfig carries the explicit configuration for verification.
type VerifierConfig struct {
	DIDMethod          string        // Must match the issuer's namespace
	RequireSignature   bool          // Policy: reject unsigned responses
	AllowMockSignature bool          // Policy: accept MOCK_SIGNATURE_ values, test only
	RequireToken       bool          // Policy: require the issuer envelope token
	MinReplayTTL       time.Duration // Floor for how long consumed nonces are remembered
}

func (c *VerifierConfig) withDefaults() VerifierConfig {
	out := *c
	if out.DIDMethod == "" {
		out.DIDMethod = core.DefaultDIDMethod
	}
	if out.MinReplayTTL <= 0 {
		out.MinReplayTTL = core.DefaultChallengeTTL
	}
	return out
}

// Verifier validates signed challenge responses. Each response reaches
// exactly one terminal state; consumed nonces never verify again.
type Verifier struct {
	cfg          VerifierConfig
	sigVerifier  ports.SignatureVerifier
	nonces       ports.NonceStore
	tokenizer    ports.Tokenizer
	ledger       ports.Ledger
	corroborator ports.ClaimsCorroborator
	credentials  *CredentialIssuer
	events       ports.EventPublisher

	now func() time.Time
}

// NewVerifier creates a challenge verifier. The nonce store and the
// credential issuer are required; tokenizer, ledger, corroborator, and
// event publisher are optional collaborators.
func NewVerifier(
	cfg VerifierConfig,
	sigVerifier ports.SignatureVerifier,
	nonces ports.NonceStore,
	credentials *CredentialIssuer,
	opts ...VerifierOption,
) *Verifier {
	v := &Verifier{
		cfg:         cfg.withDefaults(),
		sigVerifier: sigVerifier,
		nonces:      nonces,
		credentials: credentials,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifierOption wires an optional collaborator into the verifier.
type VerifierOption func(*Verifier)

func WithTokenizer(t ports.Tokenizer) VerifierOption {
	return func(v *Verifier) { v.tokenizer = t }
}

func WithLedger(l ports.Ledger) VerifierOption {
	return func(v *Verifier) { v.ledger = l }
}

func WithCorroborator(c ports.ClaimsCorroborator) VerifierOption {
	return func(v *Verifier) { v.corroborator = c }
}

func WithEventPublisher(p ports.EventPublisher) VerifierOption {
	return func(v *Verifier) { v.events = p }
}

// Verify runs the ordered check pipeline over a challenge response. Every
// protocol failure is reported as a tagged result, never an error; the
// error return is reserved for infrastructure faults (nonce store down).
//
// Check order: presence, expiry, address binding, DID binding, hash
// integrity, signature, replay. The first failing check wins and the rest
// are skipped, so the reason code never leaks which later checks would
// also have failed.
func (v *Verifier) Verify(ctx context.Context, resp *core.ChallengeResponse, expectedAddress string) (*core.VerificationResult, error) {
	now := v.now()

	// Presence.
	if resp == nil || resp.Challenge == "" || resp.ChallengeHash == "" || resp.DID == "" {
		return v.reject(ctx, nil, core.ReasonMissingFields, now), nil
	}
	if v.cfg.RequireSignature && resp.Signature == "" {
		return v.reject(ctx, nil, core.ReasonMissingFields, now), nil
	}
	if v.cfg.RequireToken && resp.ChallengeToken == "" {
		return v.reject(ctx, nil, core.ReasonMissingFields, now), nil
	}

	challenge, err := core.ParseChallengePayload(resp.Challenge)
	if err != nil {
		return v.reject(ctx, nil, core.ReasonMissingFields, now), nil
	}

	// Issuer envelope: a token that does not round-trip to this exact
	// challenge means the payload was not minted here.
	if resp.ChallengeToken != "" && v.tokenizer != nil {
		issued, err := v.tokenizer.TokenToChallenge(resp.ChallengeToken)
		if err != nil || issued.Nonce != challenge.Nonce || issued.Address != challenge.Address {
			return v.reject(ctx, challenge, core.ReasonHashMismatch, now), nil
		}
	}

	// Expiry.
	if challenge.Expired(now) {
		return v.reject(ctx, challenge, core.ReasonExpired, now), nil
	}

	// Address binding.
	if expectedAddress != "" && challenge.Address != expectedAddress {
		return v.reject(ctx, challenge, core.ReasonAddressMismatch, now), nil
	}

	// DID binding.
	if resp.DID != core.BuildDID(v.cfg.DIDMethod, challenge.Address) {
		return v.reject(ctx, challenge, core.ReasonDIDMismatch, now), nil
	}

	// Hash integrity.
	computed, err := challenge.Hash()
	if err != nil {
		return nil, err
	}
	if computed != resp.ChallengeHash {
		return v.reject(ctx, challenge, core.ReasonHashMismatch, now), nil
	}

	// Signature.
	if resp.Signature != "" {
		valid, err := v.checkSignature(challenge, resp.Signature, computed)
		if err != nil || !valid {
			return v.reject(ctx, challenge, core.ReasonSignatureInvalid, now), nil
		}
	}

	// Replay: consume the nonce last so failed attempts do not burn it.
	// TryConsume is atomic; two concurrent attempts cannot both win.
	consumed, err := v.nonces.TryConsume(ctx, challenge.Nonce, v.replayTTL(challenge, now))
	if err != nil {
		return nil, err
	}
	if !consumed {
		return v.reject(ctx, challenge, core.ReasonAlreadyUsed, now), nil
	}

	return v.accept(ctx, challenge, resp.DID, now)
}

func (v *Verifier) checkSignature(challenge *core.Challenge, signature, hash string) (bool, error) {
	if strings.HasPrefix(signature, core.MockSignaturePrefix) {
		if !v.cfg.AllowMockSignature {
			return false, nil
		}
		return signature == core.MockSignaturePrefix+hash[:16], nil
	}
	if v.sigVerifier == nil || challenge.PublicKey == "" {
		return false, nil
	}
	artifact, err := core.SigningArtifact(challenge.Address, challenge.Nonce, hash)
	if err != nil {
		return false, err
	}
	return v.sigVerifier.Verify(challenge.PublicKey, artifact, signature)
}

// replayTTL keeps consumed nonces at least as long as the challenge could
// still be replayed, with a floor for clock skew.
func (v *Verifier) replayTTL(challenge *core.Challenge, now time.Time) time.Duration {
	remaining := time.Unix(challenge.ExpiresAt, 0).Sub(now)
	if remaining < v.cfg.MinReplayTTL {
		return v.cfg.MinReplayTTL
	}
	return remaining
}

func (v *Verifier) accept(ctx context.Context, challenge *core.Challenge, did string, now time.Time) (*core.VerificationResult, error) {
	result := &core.VerificationResult{
		Verified:   true,
		Reason:     core.ReasonOK,
		DID:        did,
		Address:    challenge.Address,
		Claims:     challenge.Claims,
		VerifiedAt: now,
		Ledger:     &core.LedgerCheck{Status: core.LedgerSkipped},
	}

	claims := map[string]interface{}{}
	if v.corroborator != nil {
		corroborated, err := v.corroborator.Corroborate(ctx, did, challenge.Address, challenge.Claims)
		if err != nil {
			return nil, err
		}
		claims = corroborated
	}

	credential, err := v.credentials.IssueCredential(did, claims)
	if err != nil {
		return nil, err
	}
	result.Credential = credential

	if v.ledger != nil {
		result.Ledger = v.corroborateLedger(ctx, challenge.Address)
	}

	v.publish(ctx, challenge, result)
	return result, nil
}

// corroborateLedger looks the account up on the ledger. Failures here are
// recoverable and reported on the result; the cryptographic verdict stands.
func (v *Verifier) corroborateLedger(ctx context.Context, address string) *core.LedgerCheck {
	info, err := v.ledger.AccountInfo(ctx, address)
	if err != nil {
		log.Printf("ledger corroboration unavailable for %s: %v", address, err)
		return &core.LedgerCheck{Status: core.LedgerUnavailable}
	}
	status := core.LedgerConfirmed
	if !info.Exists {
		status = core.LedgerUnconfirmed
	}
	return &core.LedgerCheck{
		Status:   status,
		Balance:  info.Balance,
		Sequence: info.Sequence,
	}
}

func (v *Verifier) reject(ctx context.Context, challenge *core.Challenge, reason core.ReasonCode, now time.Time) *core.VerificationResult {
	if reason == core.ReasonHashMismatch && challenge != nil {
		// Tampering or a canonicalization drift between issuer and
		// verifier; louder than an ordinary validation failure.
		log.Printf("ERROR: challenge hash mismatch for %s", challenge.Address)
	}
	result := &core.VerificationResult{
		Verified:   false,
		Reason:     reason,
		VerifiedAt: now,
	}
	if challenge != nil {
		result.Address = challenge.Address
		result.DID = core.BuildDID(v.cfg.DIDMethod, challenge.Address)
		result.Claims = challenge.Claims
		v.publish(ctx, challenge, result)
	}
	return result
}

func (v *Verifier) publish(ctx context.Context, challenge *core.Challenge, result *core.VerificationResult) {
	if v.events == nil {
		return
	}
	event := core.VerificationEvent{
		DID:        result.DID,
		Address:    result.Address,
		Verified:   result.Verified,
		Reason:     result.Reason,
		Nonce:      challenge.Nonce,
		VerifiedAt: result.VerifiedAt,
	}
	if err := v.events.PublishVerification(ctx, event); err != nil {
		// The result is already terminal; losing the event is not fatal.
		log.Printf("Warning: failed to publish verification event: %v", err)
	}
}
