package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDIDRoundTrip(t *testing.T) {
	did := BuildDID("xrpl", "rAlice123")
	assert.Equal(t, "did:xrpl:rAlice123", did)

	address, err := AddressFromDID("xrpl", did)
	require.NoError(t, err)
	assert.Equal(t, "rAlice123", address)
}

func TestBuildDIDInjective(t *testing.T) {
	assert.NotEqual(t, BuildDID("xrpl", "rAlice123"), BuildDID("xrpl", "rBob456"))
}

func TestAddressFromDIDRejectsOtherMethods(t *testing.T) {
	_, err := AddressFromDID("xrpl", "did:ethr:0xabc")
	assert.ErrorIs(t, err, ErrInvalidSubject)

	_, err = AddressFromDID("xrpl", "did:xrpl:")
	assert.Error(t, err)
}

func TestValidDID(t *testing.T) {
	assert.True(t, ValidDID("did:xrpl:rAlice123"))
	assert.False(t, ValidDID("did:xrpl:"))
	assert.False(t, ValidDID("did::rAlice123"))
	assert.False(t, ValidDID("rAlice123"))
}

func TestGenerateDIDDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	doc, err := GenerateDIDDocument("xrpl", "rAlice123", "02a1b2c3", "", now)
	require.NoError(t, err)

	assert.Equal(t, "did:xrpl:rAlice123", doc.ID)
	require.Len(t, doc.VerificationMethod, 1)
	assert.Equal(t, doc.ID+"#keys-1", doc.VerificationMethod[0].ID)
	assert.Equal(t, doc.ID, doc.VerificationMethod[0].Controller)
	assert.NotEmpty(t, doc.VerificationMethod[0].PublicKeyMultibase)
	assert.Equal(t, []string{doc.ID + "#keys-1"}, doc.Authentication)
	assert.Equal(t, doc.Authentication, doc.AssertionMethod)
	require.Len(t, doc.Service, 1)
	assert.NotEmpty(t, doc.Service[0].Endpoint)
	assert.Equal(t, "2025-06-01T12:00:00Z", doc.Created)
	assert.Equal(t, doc.Created, doc.Updated)
}

func TestGenerateDIDDocumentRejectsBadKey(t *testing.T) {
	_, err := GenerateDIDDocument("xrpl", "rAlice123", "not-hex", "", time.Now())
	assert.Error(t, err)
}
