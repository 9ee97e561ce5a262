package services

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// FinalizationPreviewSvc derives ledger lines without persisting anything
type FinalizationPreviewSvc interface {
	Preview(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error)

	// SuggestPayment returns the payment receipt defaults for the finalize form.
	SuggestPayment(ctx context.Context, tradeNumber string) (*domain.PaymentSuggestion, error)
}

// FinalizerSvc finalizes trades
type FinalizerSvc interface {
	// Finalize validates the command, posts the trade's ledger lines and marks it finalized.
	Finalize(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error)
}

// FinalizationSvcFacade combines the finalization service interfaces
type FinalizationSvcFacade interface {
	FinalizationPreviewSvc
	FinalizerSvc
}
