package ports

import (
	"context"

	"github.com/veridian-labs/walletproof/core"
)

// EventPublisher notifies other instances about terminal verification
// attempts.
type EventPublisher interface {
	PublishVerification(ctx context.Context, event core.VerificationEvent) error
}
