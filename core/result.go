package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReasonCode identifies why a verification succeeded or failed. Exactly one
// code is produced per attempt; the pipeline short-circuits on the first
// failing check.
type ReasonCode string

const (
	ReasonOK               ReasonCode = "ok"
	ReasonMissingFields    ReasonCode = "missing_fields"
	ReasonExpired          ReasonCode = "expired"
	ReasonAddressMismatch  ReasonCode = "address_mismatch"
	ReasonDIDMismatch      ReasonCode = "did_mismatch"
	ReasonHashMismatch     ReasonCode = "hash_mismatch"
	ReasonSignatureInvalid ReasonCode = "signature_invalid"
	ReasonAlreadyUsed      ReasonCode = "already_used"
)

// LedgerStatus reports the outcome of the optional ledger corroboration.
// It never affects the cryptographic verdict: an unreachable ledger yields
// "verification incomplete", not "verification failed".
type LedgerStatus string

const (
	LedgerConfirmed   LedgerStatus = "confirmed"
	LedgerUnconfirmed LedgerStatus = "unconfirmed"
	LedgerUnavailable LedgerStatus = "unavailable"
	LedgerSkipped     LedgerStatus = "skipped"
)

// AccountInfo is what a ledger lookup returns for an address.
type AccountInfo struct {
	Exists   bool
	Balance  decimal.Decimal
	Sequence uint64
}

// LedgerCheck is the corroboration sub-result attached to a verification.
type LedgerCheck struct {
	Status   LedgerStatus    `json:"status"`
	Balance  decimal.Decimal `json:"balance"`
	Sequence uint64          `json:"sequence"`
}

// VerificationResult is the terminal outcome of a verification attempt.
type VerificationResult struct {
	Verified   bool                  `json:"verified"`
	Reason     ReasonCode            `json:"reason"`
	DID        string                `json:"did,omitempty"`
	Address    string                `json:"address,omitempty"`
	Claims     []string              `json:"required_claims,omitempty"`
	VerifiedAt time.Time             `json:"verified_at"`
	Credential *VerifiableCredential `json:"verifiable_credential,omitempty"`
	Ledger     *LedgerCheck          `json:"ledger,omitempty"`
}

// VerificationEvent is published after every terminal verification attempt.
type VerificationEvent struct {
	DID        string     `json:"did"`
	Address    string     `json:"address"`
	Verified   bool       `json:"verified"`
	Reason     ReasonCode `json:"reason"`
	Nonce      string     `json:"nonce"`
	VerifiedAt time.Time  `json:"verified_at"`
}
