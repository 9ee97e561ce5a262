package services

import (
	"context"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
)

// FeePlanReaderSvc exposes the fee plan catalog
type FeePlanReaderSvc interface {
	// ListFeePlans returns the catalog in display order.
	ListFeePlans(ctx context.Context) []domain.FeePlan
}

// CommissionCalculatorSvc computes an agent's split
type CommissionCalculatorSvc interface {
	// CalculateAgentCommission applies tax, the fee plan and any buyer rebate.
	// Unknown fee plans are rejected with ErrValidation.
	CalculateAgentCommission(ctx context.Context, req dto.CalculateCommissionRequest) (*domain.AgentCommissionResult, error)
}

// CommissionSvcFacade combines the commission-related service interfaces
type CommissionSvcFacade interface {
	FeePlanReaderSvc
	CommissionCalculatorSvc
}
