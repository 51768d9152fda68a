package signer

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veridian-labs/walletproof/core"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s := NewECDSASigner(key)

	payload := []byte(`{"account":"rAlice123","nonce":"n1","payload_hash":"h1"}`)
	signature, err := s.Sign(payload)
	require.NoError(t, err)

	valid, err := NewECDSAVerifier().Verify(s.PublicKeyHex(), payload, signature)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyAcceptsUncompressedKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s := NewECDSASigner(key)

	payload := []byte("artifact")
	signature, err := s.Sign(payload)
	require.NoError(t, err)

	uncompressed := hex.EncodeToString(crypto.FromECDSAPub(&key.PublicKey))
	valid, err := NewECDSAVerifier().Verify(uncompressed, payload, signature)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	payload := []byte("artifact")
	signature, err := NewECDSASigner(key).Sign(payload)
	require.NoError(t, err)

	valid, err := NewECDSAVerifier().Verify(NewECDSASigner(other).PublicKeyHex(), payload, signature)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s := NewECDSASigner(key)

	signature, err := s.Sign([]byte("original"))
	require.NoError(t, err)

	valid, err := NewECDSAVerifier().Verify(s.PublicKeyHex(), []byte("tampered"), signature)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyRejectsMalformedInputs(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s := NewECDSASigner(key)

	payload := []byte("artifact")
	signature, err := s.Sign(payload)
	require.NoError(t, err)

	_, err = NewECDSAVerifier().Verify(s.PublicKeyHex(), payload, "not-hex")
	assert.ErrorIs(t, err, core.ErrInvalidSignature)

	_, err = NewECDSAVerifier().Verify(s.PublicKeyHex(), payload, "0xdead")
	assert.ErrorIs(t, err, core.ErrInvalidSignature)

	_, err = NewECDSAVerifier().Verify("zz", payload, signature)
	assert.Error(t, err)

	_, err = NewECDSAVerifier().Verify("deadbeef", payload, signature)
	assert.Error(t, err)
}

func TestFailingSignerAlwaysFails(t *testing.T) {
	_, err := FailingSigner{}.Sign([]byte("anything"))
	assert.Error(t, err)
}
