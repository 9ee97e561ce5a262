package services

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for the local ledger
type LedgerReaderSvc interface {
	ListEntriesByTrade(ctx context.Context, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc posts ledger entries
type LedgerWriterSvc interface {
	// PostEntry stores a manual entry and pushes it to the remote ledger when one is configured.
	PostEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error)

	// PostEntries pushes persisted entries to the remote ledger and records the outcome.
	// It reports whether every entry was synced.
	PostEntries(ctx context.Context, entries []domain.LedgerEntry) (bool, error)
}

// LedgerSyncSvc retries entries the remote ledger has not accepted yet
type LedgerSyncSvc interface {
	// SyncPendingEntries re-posts up to limit PENDING entries and returns how many were synced.
	SyncPendingEntries(ctx context.Context, limit int) (int, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerSyncSvc
}
