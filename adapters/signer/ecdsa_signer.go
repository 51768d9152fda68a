package signer

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
)

// ECDSASigner signs artifacts with a secp256k1 holder key. The key never
// leaves the struct and is never logged.
type ECDSASigner struct {
	key *ecdsa.PrivateKey
}

// NewECDSASigner creates a signer around an existing private key.
func NewECDSASigner(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{key: key}
}

// Sign produces a recoverable signature over the personal-sign digest of
// the payload, hex-encoded.
func (s *ECDSASigner) Sign(payload []byte) (string, error) {
	if s.key == nil {
		return "", core.ErrSigningUnavailable
	}
	digest := accounts.TextHash(payload)
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign payload: %w", err)
	}
	return hexutil.Encode(sig), nil
}

// PublicKeyHex returns the compressed public key of the signer, hex-encoded
// without a 0x prefix, matching the challenge's subjectPublicKey field.
func (s *ECDSASigner) PublicKeyHex() string {
	return hex.EncodeToString(crypto.CompressPubkey(&s.key.PublicKey))
}

// ECDSAVerifier validates recoverable secp256k1 signatures against a
// hex-encoded public key.
type ECDSAVerifier struct{}

// NewECDSAVerifier creates a signature verifier.
func NewECDSAVerifier() *ECDSAVerifier {
	return &ECDSAVerifier{}
}

// Verify recovers the signing key from the signature and compares it to the
// expected public key. Both compressed (33 byte) and uncompressed (65 byte)
// key encodings are accepted.
func (v *ECDSAVerifier) Verify(publicKeyHex string, payload []byte, signature string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", core.ErrInvalidSignature)
	}
	if len(sig) != 65 {
		return false, fmt.Errorf("signature must be 65 bytes: %w", core.ErrInvalidSignature)
	}

	expected, err := parsePublicKey(publicKeyHex)
	if err != nil {
		return false, err
	}

	digest := accounts.TextHash(payload)
	recovered, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", core.ErrInvalidSignature)
	}

	return crypto.PubkeyToAddress(*recovered) == crypto.PubkeyToAddress(*expected), nil
}

func parsePublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(publicKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	switch len(raw) {
	case 33:
		return crypto.DecompressPubkey(raw)
	case 65:
		return crypto.UnmarshalPubkey(raw)
	default:
		return nil, fmt.Errorf("unsupported public key length %d", len(raw))
	}
}

var (
	_ ports.Signer            = (*ECDSASigner)(nil)
	_ ports.SignatureVerifier = (*ECDSAVerifier)(nil)
)
