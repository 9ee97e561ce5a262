package repositories

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// TradeReader defines read operations for trade documents
type TradeReader interface {
	// FindTradeByNumber retrieves a trade by its trade number.
	FindTradeByNumber(ctx context.Context, tradeNumber string) (*domain.Trade, error)
}

// TradeWriter defines write operations for trade documents
type TradeWriter interface {
	// SaveTrade inserts or replaces a trade document. Finalized trades are rejected with ErrConflict.
	SaveTrade(ctx context.Context, trade domain.Trade) error
}

// TradeFinalizer persists a finalization: the trade's finalized state and its ledger
// entries are written in one database transaction.
type TradeFinalizer interface {
	SaveFinalization(ctx context.Context, trade domain.Trade, entries []domain.LedgerEntry) error
}

// TradeRepositoryFacade combines all trade-related repository interfaces
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
	TradeFinalizer
}
