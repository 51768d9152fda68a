package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veridian-labs/walletproof/core"
)

// CredentialConfig carries the explicit configuration for credential
// issuance.
type CredentialConfig struct {
	IssuerDID string        // DID this service asserts credentials as
	Validity  time.Duration // Window between issuance and expiry
}

func (c *CredentialConfig) withDefaults() CredentialConfig {
	out := *c
	if out.IssuerDID == "" {
		out.IssuerDID = core.BuildDID(core.DefaultDIDMethod, "wallet-verifier")
	}
	if out.Validity <= 0 {
		out.Validity = core.DefaultCredentialValidity
	}
	return out
}

// CredentialIssuer mints short-lived claims-bearing credentials for
// verified subjects.
type CredentialIssuer struct {
	cfg CredentialConfig

	now func() time.Time
}

// NewCredentialIssuer creates a credential issuer.
func NewCredentialIssuer(cfg CredentialConfig) *CredentialIssuer {
	return &CredentialIssuer{
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
}

// IssueCredential mints a credential binding the subject DID to the given
// claims. Pure aside from id and timestamp generation.
func (s *CredentialIssuer) IssueCredential(subjectDID string, claims map[string]interface{}) (*core.VerifiableCredential, error) {
	if !core.ValidDID(subjectDID) {
		return nil, fmt.Errorf("%q: %w", subjectDID, core.ErrInvalidSubject)
	}

	subject := map[string]interface{}{"id": subjectDID}
	for name, value := range claims {
		if name == "id" {
			continue
		}
		subject[name] = value
	}

	now := s.now().UTC()
	return &core.VerifiableCredential{
		Context:        core.CredentialContexts(),
		ID:             "urn:uuid:" + uuid.New().String(),
		Type:           []string{"VerifiableCredential", core.CredentialType},
		Issuer:         s.cfg.IssuerDID,
		IssuanceDate:   now.Format(time.RFC3339),
		ExpirationDate: now.Add(s.cfg.Validity).Format(time.RFC3339),
		Subject:        subject,
	}, nil
}
