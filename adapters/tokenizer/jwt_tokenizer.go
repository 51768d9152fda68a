package tokenizer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
)

const AudienceChallenge = "walletproof:challenge"

// JWTTokenizer wraps challenges in ES256-signed envelope tokens so the
// verifier can confirm a submitted challenge was minted by this service.
type JWTTokenizer struct {
	signKey *ecdsa.PrivateKey
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(signKey *ecdsa.PrivateKey) ports.Tokenizer {
	return &JWTTokenizer{signKey: signKey}
}

// ChallengeToToken converts a Challenge to a JWT token
func (j *JWTTokenizer) ChallengeToToken(challenge *core.Challenge) (string, error) {
	claims := ChallengeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   challenge.Address,
			ID:        challenge.Nonce,
			ExpiresAt: jwt.NewNumericDate(challenge.ExpiresAtTime()),
			IssuedAt:  jwt.NewNumericDate(challenge.IssuedAtTime()),
			Audience:  jwt.ClaimStrings{AudienceChallenge},
		},
		Nonce:     challenge.Nonce,
		PublicKey: challenge.PublicKey,
		Claims:    challenge.Claims,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToChallenge converts a JWT token back to a Challenge
func (j *JWTTokenizer) TokenToChallenge(tokenStr string) (*core.Challenge, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ChallengeClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &j.signKey.PublicKey, nil
	}, jwt.WithAudience(AudienceChallenge))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*ChallengeClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}

	challenge := &core.Challenge{
		Address:   claims.Subject,
		PublicKey: claims.PublicKey,
		Nonce:     claims.Nonce,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
		Claims:    claims.Claims,
	}

	return challenge, nil
}
