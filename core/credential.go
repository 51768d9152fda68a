package core

import "time"

const (
	// CredentialType tags every credential minted by this service.
	CredentialType = "WalletOwnershipCredential"

	// DefaultCredentialValidity is the window between issuance and expiry.
	DefaultCredentialValidity = 30 * 24 * time.Hour
)

var credentialContexts = []string{
	"https://www.w3.org/2018/credentials/v1",
	"https://wallet-verifier.example.org/contexts/wallet-verification/v1",
}

// VerifiableCredential is a W3C-shaped bearer assertion binding a subject
// DID to a claim set. Immutable once minted; there is no revocation list.
type VerifiableCredential struct {
	Context        []string               `json:"@context"`
	ID             string                 `json:"id"`
	Type           []string               `json:"type"`
	Issuer         string                 `json:"issuer"`
	IssuanceDate   string                 `json:"issuanceDate"`
	ExpirationDate string                 `json:"expirationDate"`
	Subject        map[string]interface{} `json:"credentialSubject"`
}

// CredentialContexts returns the JSON-LD contexts for minted credentials.
func CredentialContexts() []string {
	out := make([]string, len(credentialContexts))
	copy(out, credentialContexts)
	return out
}
