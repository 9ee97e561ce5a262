package services

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// ReportingSvcFacade builds trade reports
type ReportingSvcFacade interface {
	// TransactionDetails assembles the ledger, trust deposit and trust transfer sections of a trade.
	TransactionDetails(ctx context.Context, tradeNumber string) (*domain.TransactionDetails, error)
}
