package services

import (
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/feeplan"
	"github.com/shopspring/decimal"
)

// DefaultHSTRate is the Ontario HST rate applied to commissions and fees.
var DefaultHSTRate = decimal.RequireFromString("0.15")

var hundred = decimal.NewFromInt(100)

// CommissionCalculator prices an agent's split. It has no dependencies beyond
// the fee plan catalog so the CLI and the API share it.
type CommissionCalculator struct {
	catalog *feeplan.Catalog
	hstRate decimal.Decimal
}

// NewCommissionCalculator creates a calculator. A nil catalog uses the built-in one and a
// non-positive rate falls back to DefaultHSTRate.
func NewCommissionCalculator(catalog *feeplan.Catalog, hstRate decimal.Decimal) *CommissionCalculator {
	if catalog == nil {
		catalog = feeplan.Default()
	}
	if !hstRate.IsPositive() {
		hstRate = DefaultHSTRate
	}
	return &CommissionCalculator{catalog: catalog, hstRate: hstRate}
}

// HSTRate returns the tax rate in use.
func (c *CommissionCalculator) HSTRate() decimal.Decimal {
	return c.hstRate
}

// Catalog returns the fee plan catalog in use.
func (c *CommissionCalculator) Catalog() *feeplan.Catalog {
	return c.catalog
}

// Calculate applies tax, fee plan and rebate to in. An unknown fee plan code deducts nothing.
func (c *CommissionCalculator) Calculate(in domain.AgentCommissionInput) domain.AgentCommissionResult {
	plan, ok := c.catalog.Lookup(in.FeePlanCode)
	if !ok {
		plan = domain.FeePlan{Code: in.FeePlanCode}
	}

	amount := domain.RoundMoney(in.AwardAmount.Mul(in.Percentage).Div(hundred))
	tax := c.Tax(amount)
	total := amount.Add(tax)

	fees := domain.RoundMoney(plan.Deduction(amount, in.FlexibleFeesDeducted))
	taxOnFees := c.Tax(fees)
	totalFees := fees.Add(taxOnFees)

	rebate := decimal.Zero
	if in.BuyerRebateIncluded && in.BuyerRebateAmount.IsPositive() {
		rebate = domain.RoundMoney(in.BuyerRebateAmount)
	}

	return domain.AgentCommissionResult{
		FeePlan:           plan,
		AwardAmount:       domain.RoundMoney(in.AwardAmount),
		Amount:            amount,
		Tax:               tax,
		Total:             total,
		FeesDeducted:      fees,
		TaxOnFees:         taxOnFees,
		TotalFees:         totalFees,
		BuyerRebateAmount: rebate,
		NetCommission:     total.Sub(totalFees).Sub(rebate),
	}
}

// Tax returns amount * HST rounded to cents.
func (c *CommissionCalculator) Tax(amount decimal.Decimal) decimal.Decimal {
	return domain.RoundMoney(amount.Mul(c.hstRate))
}
