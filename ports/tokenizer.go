package ports

import "github.com/veridian-labs/walletproof/core"

// Tokenizer converts challenges to and from issuer-attested envelope tokens.
// The envelope lets the verifier confirm a submitted challenge was minted
// here and not fabricated by the holder.
type Tokenizer interface {
	ChallengeToToken(challenge *core.Challenge) (string, error)
	TokenToChallenge(token string) (*core.Challenge, error)
}
