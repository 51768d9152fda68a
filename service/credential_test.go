package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veridian-labs/walletproof/core"
)

func TestIssueCredential(t *testing.T) {
	issuer := NewCredentialIssuer(CredentialConfig{Validity: 30 * 24 * time.Hour})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	credential, err := issuer.IssueCredential("did:xrpl:rAlice123", map[string]interface{}{
		"walletOwnershipVerified": true,
		"walletAddress":           "rAlice123",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(credential.ID, "urn:uuid:"))
	assert.Equal(t, []string{"VerifiableCredential", core.CredentialType}, credential.Type)
	assert.Equal(t, "did:xrpl:wallet-verifier", credential.Issuer)
	assert.Equal(t, "2025-06-01T12:00:00Z", credential.IssuanceDate)
	assert.Equal(t, "2025-07-01T12:00:00Z", credential.ExpirationDate)
	assert.NotEmpty(t, credential.Context)

	assert.Equal(t, "did:xrpl:rAlice123", credential.Subject["id"])
	assert.Equal(t, true, credential.Subject["walletOwnershipVerified"])
	assert.Equal(t, "rAlice123", credential.Subject["walletAddress"])
}

func TestIssueCredentialEmptyClaims(t *testing.T) {
	issuer := NewCredentialIssuer(CredentialConfig{})

	credential, err := issuer.IssueCredential("did:xrpl:rAlice123", nil)
	require.NoError(t, err)

	assert.Len(t, credential.Subject, 1)
	assert.Equal(t, "did:xrpl:rAlice123", credential.Subject["id"])
}

func TestIssueCredentialIDsAreUnique(t *testing.T) {
	issuer := NewCredentialIssuer(CredentialConfig{})

	first, err := issuer.IssueCredential("did:xrpl:rAlice123", nil)
	require.NoError(t, err)
	second, err := issuer.IssueCredential("did:xrpl:rAlice123", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestIssueCredentialClaimsCannotOverrideSubjectID(t *testing.T) {
	issuer := NewCredentialIssuer(CredentialConfig{})

	credential, err := issuer.IssueCredential("did:xrpl:rAlice123", map[string]interface{}{
		"id": "did:xrpl:rMallory999",
	})
	require.NoError(t, err)

	assert.Equal(t, "did:xrpl:rAlice123", credential.Subject["id"])
}

func TestIssueCredentialRejectsMalformedDID(t *testing.T) {
	issuer := NewCredentialIssuer(CredentialConfig{})

	for _, subject := range []string{"", "rAlice123", "did:xrpl:"} {
		_, err := issuer.IssueCredential(subject, nil)
		assert.ErrorIs(t, err, core.ErrInvalidSubject)
	}
}
