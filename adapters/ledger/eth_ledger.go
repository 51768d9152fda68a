package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
)

// DefaultLookupTimeout bounds every ledger RPC call so verification never
// blocks on an unreachable node.
const DefaultLookupTimeout = 5 * time.Second

// EthLedger corroborates subject addresses against an Ethereum-compatible
// JSON-RPC node.
type EthLedger struct {
	client  *ethclient.Client
	timeout time.Duration
}

// NewEthLedger creates a ledger adapter around an existing RPC client. A
// non-positive timeout falls back to DefaultLookupTimeout.
func NewEthLedger(client *ethclient.Client, timeout time.Duration) *EthLedger {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &EthLedger{client: client, timeout: timeout}
}

// Dial connects to a JSON-RPC endpoint and wraps it as a ledger adapter.
func Dial(url string, timeout time.Duration) (*EthLedger, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger node: %w", err)
	}
	return NewEthLedger(client, timeout), nil
}

// AccountInfo fetches balance and sequence for an address. An account with
// no balance and no sent transactions is reported as not existing; RPC
// failures surface as errors and are treated as recoverable by the caller.
func (l *EthLedger) AccountInfo(ctx context.Context, address string) (core.AccountInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	addr := common.HexToAddress(address)

	balance, err := l.client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return core.AccountInfo{}, fmt.Errorf("failed to fetch balance: %w", err)
	}

	sequence, err := l.client.NonceAt(ctx, addr, nil)
	if err != nil {
		return core.AccountInfo{}, fmt.Errorf("failed to fetch sequence: %w", err)
	}

	return core.AccountInfo{
		Exists:   balance.Sign() > 0 || sequence > 0,
		Balance:  decimal.NewFromBigInt(balance, -18),
		Sequence: sequence,
	}, nil
}

var _ ports.Ledger = (*EthLedger)(nil)
