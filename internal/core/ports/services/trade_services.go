package services

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// TradeReaderSvc defines read operations for trades
type TradeReaderSvc interface {
	GetTrade(ctx context.Context, tradeNumber string) (*domain.Trade, error)
}

// TradeWriterSvc defines write operations for trades
type TradeWriterSvc interface {
	// UpsertTrade stores a trade document. Finalized trades cannot be changed.
	UpsertTrade(ctx context.Context, tradeNumber string, trade domain.Trade, userID string) (*domain.Trade, error)
}

// TrustEFTSvc records trust account transfers against a trade
type TrustEFTSvc interface {
	RecordTrustEFT(ctx context.Context, tradeNumber string, eft domain.TrustEFT, userID string) (*domain.TrustEFT, error)
	ListTrustEFTs(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error)
}

// TradeSvcFacade combines all trade-related service interfaces
type TradeSvcFacade interface {
	TradeReaderSvc
	TradeWriterSvc
	TrustEFTSvc
}
