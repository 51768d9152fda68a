package ports

// Signer produces a signature over a byte payload with a holder's private
// key. Implementations must never expose or log the key material.
type Signer interface {
	Sign(payload []byte) (string, error)
}

// SignatureVerifier checks a signature against a hex-encoded public key.
type SignatureVerifier interface {
	Verify(publicKeyHex string, payload []byte, signature string) (bool, error)
}
