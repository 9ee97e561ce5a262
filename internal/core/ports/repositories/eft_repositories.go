package repositories

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// EFTSequencer hands out EFT numbers.
type EFTSequencer interface {
	// NextEFTSequence returns the next value of the EFT number sequence.
	NextEFTSequence(ctx context.Context) (int64, error)
}

// TrustEFTRepository stores trust account transfers recorded against trades.
type TrustEFTRepository interface {
	SaveTrustEFT(ctx context.Context, eft domain.TrustEFT) error
	ListTrustEFTsByTrade(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error)
}

// EFTRepositoryFacade combines all EFT-related repository interfaces
type EFTRepositoryFacade interface {
	EFTSequencer
	TrustEFTRepository
}
