package signer

import (
	"errors"

	"github.com/veridian-labs/walletproof/ports"
)

// FailingSigner always fails. It stands in for an unavailable signing
// subsystem so the issuer's degrade path can be exercised: in Mock mode the
// issuer falls back to an explicitly flagged mock signature, in Real mode
// it surfaces the failure.
type FailingSigner struct{}

func (FailingSigner) Sign([]byte) (string, error) {
	return "", errors.New("signing subsystem not available")
}

var _ ports.Signer = FailingSigner{}
