package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

type commissionService struct {
	BaseService
	calc *CommissionCalculator
}

// NewCommissionService creates a commission service around calc.
func NewCommissionService(calc *CommissionCalculator) portssvc.CommissionSvcFacade {
	return &commissionService{calc: calc}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func (s *commissionService) ListFeePlans(ctx context.Context) []domain.FeePlan {
	return s.calc.Catalog().List()
}

func (s *commissionService) CalculateAgentCommission(ctx context.Context, req dto.CalculateCommissionRequest) (*domain.AgentCommissionResult, error) {
	if _, ok := s.calc.Catalog().Lookup(req.FeePlan); !ok {
		s.LogDebug(ctx, "Unknown fee plan requested", slog.String("fee_plan", req.FeePlan))
		return nil, fmt.Errorf("%w: unknown fee plan %q", apperrors.ErrValidation, req.FeePlan)
	}

	award := domain.AwardAmountFor(req.Classification, req.ListingAmount, req.SellingAmount)
	if req.AwardAmount != nil {
		award = *req.AwardAmount
	}
	percentage := hundred
	if req.Percentage != nil {
		percentage = *req.Percentage
	}

	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: percentage must be between 0 and 100", apperrors.ErrValidation)
	}
	for name, v := range map[string]decimal.Decimal{
		"award amount":           award,
		"flexible fees deducted": req.FlexibleFeesDeducted,
		"buyer rebate amount":    req.BuyerRebateAmount,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
	}

	result := s.calc.Calculate(domain.AgentCommissionInput{
		AwardAmount:          award,
		Percentage:           percentage,
		FeePlanCode:          req.FeePlan,
		FlexibleFeesDeducted: req.FlexibleFeesDeducted,
		BuyerRebateIncluded:  req.BuyerRebateIncluded,
		BuyerRebateAmount:    req.BuyerRebateAmount,
	})
	return &result, nil
}
