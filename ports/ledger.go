package ports

import (
	"context"

	"github.com/veridian-labs/walletproof/core"
)

// Ledger looks up account state on the underlying ledger. Used only to
// corroborate that a subject address is a live, funded account; never
// required for cryptographic correctness.
type Ledger interface {
	AccountInfo(ctx context.Context, address string) (core.AccountInfo, error)
}
