package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// AccountingLedger is the remote accounting API that owns the trial balance.
type AccountingLedger interface {
	// Enabled is false when no remote ledger is configured; entries are then posted locally only.
	Enabled() bool

	// PostLine posts one ledger line.
	PostLine(ctx context.Context, line domain.LedgerLine) error

	// FinalizeTrade marks the trade finalized on the remote side.
	FinalizeTrade(ctx context.Context, tradeNumber string, finalizedDate time.Time, fallenThru bool) error
}

// EventTracker records product analytics events. Implementations must not block.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
