package tokenizer

import "github.com/golang-jwt/jwt/v5"

// ChallengeClaims combines standard claims with challenge-specific ones.
// The JWT id is the challenge nonce; the subject is the ledger address.
type ChallengeClaims struct {
	jwt.RegisteredClaims
	Nonce     string   `json:"nonce"`
	PublicKey string   `json:"public_key,omitempty"`
	Claims    []string `json:"claims"`
}
