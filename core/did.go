package core

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// DefaultDIDMethod is the method namespace challenges and credentials are
// minted under unless configured otherwise.
const DefaultDIDMethod = "xrpl"

// BuildDID derives the DID for a ledger address under the given method
// namespace. The mapping is deterministic and injective per method.
func BuildDID(method, address string) string {
	return fmt.Sprintf("did:%s:%s", method, address)
}

// AddressFromDID inverts BuildDID for the given method namespace.
func AddressFromDID(method, did string) (string, error) {
	prefix := fmt.Sprintf("did:%s:", method)
	if !strings.HasPrefix(did, prefix) || len(did) == len(prefix) {
		return "", fmt.Errorf("%q is not a did:%s identifier: %w", did, method, ErrInvalidSubject)
	}
	return did[len(prefix):], nil
}

// ValidDID reports whether s has the did:<method>:<address> shape.
func ValidDID(s string) bool {
	parts := strings.SplitN(s, ":", 3)
	return len(parts) == 3 && parts[0] == "did" && parts[1] != "" && parts[2] != ""
}

// VerificationMethod is a single key entry in a DID document.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
}

// ServiceEndpoint is a service entry in a DID document.
type ServiceEndpoint struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Endpoint string `json:"serviceEndpoint"`
}

// DIDDocument describes a subject DID and its key material.
type DIDDocument struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
	Service            []ServiceEndpoint    `json:"service"`
	Created            string               `json:"created"`
	Updated            string               `json:"updated"`
}

// GenerateDIDDocument builds a DID document for a ledger address. The public
// key is hex in, multibase (base64) out. An empty serviceURL omits nothing;
// the default verification service endpoint is always present.
func GenerateDIDDocument(method, address, publicKeyHex, serviceURL string, now time.Time) (*DIDDocument, error) {
	did := BuildDID(method, address)

	keyBytes, err := hex.DecodeString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}

	if serviceURL == "" {
		serviceURL = "https://wallet-verifier.example.org/api/v1"
	}

	created := now.UTC().Format(time.RFC3339)
	keyID := did + "#keys-1"

	return &DIDDocument{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/suites/ed25519-2020/v1",
		},
		ID: did,
		VerificationMethod: []VerificationMethod{{
			ID:                 keyID,
			Type:               "EcdsaSecp256k1VerificationKey2019",
			Controller:         did,
			PublicKeyMultibase: base64.StdEncoding.EncodeToString(keyBytes),
		}},
		Authentication:  []string{keyID},
		AssertionMethod: []string{keyID},
		Service: []ServiceEndpoint{{
			ID:       did + "#wallet-verification-service",
			Type:     "WalletVerificationService",
			Endpoint: serviceURL,
		}},
		Created: created,
		Updated: created,
	}, nil
}
