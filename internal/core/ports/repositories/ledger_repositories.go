package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// LedgerEntryReader defines read operations for the local ledger
type LedgerEntryReader interface {
	// ListEntriesByTrade returns a page of a trade's entries ordered by date then position.
	ListEntriesByTrade(ctx context.Context, tradeNumber string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesByTradeRef returns every entry whose description references "Trade #: <n>".
	FindEntriesByTradeRef(ctx context.Context, tradeNumber string) ([]domain.LedgerEntry, error)

	// FindEntriesByEFTNumber returns every entry carrying eftNumber.
	FindEntriesByEFTNumber(ctx context.Context, eftNumber string) ([]domain.LedgerEntry, error)

	// FindPendingEntries returns up to limit entries still awaiting remote sync, oldest first.
	FindPendingEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// ListEFTReferences returns the distinct EFT references used on entries.
	ListEFTReferences(ctx context.Context) ([]string, error)
}

// LedgerEntryWriter defines write operations for the local ledger
type LedgerEntryWriter interface {
	// SaveEntries inserts entries in one batch.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error

	// MarkEntriesPosted flips synced entries to POSTED.
	MarkEntriesPosted(ctx context.Context, entryIDs []string, at time.Time) error

	// RecordSyncFailure bumps the attempt counter and stores the last error.
	RecordSyncFailure(ctx context.Context, entryIDs []string, syncErr string, at time.Time) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
