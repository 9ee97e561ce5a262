package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AgentCommissionInput is what is known about an agent's split before fees.
type AgentCommissionInput struct {
	AwardAmount          decimal.Decimal
	Percentage           decimal.Decimal
	FeePlanCode          string
	FlexibleFeesDeducted decimal.Decimal
	BuyerRebateIncluded  bool
	BuyerRebateAmount    decimal.Decimal
}

// AgentCommissionResult is the agent's split after tax, fees and rebate. All values are rounded to cents.
type AgentCommissionResult struct {
	FeePlan           FeePlan         `json:"feePlan"`
	AwardAmount       decimal.Decimal `json:"awardAmount"`
	Amount            decimal.Decimal `json:"amount"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	FeesDeducted      decimal.Decimal `json:"feesDeducted"`
	TaxOnFees         decimal.Decimal `json:"taxOnFees"`
	TotalFees         decimal.Decimal `json:"totalFees"`
	BuyerRebateAmount decimal.Decimal `json:"buyerRebateAmount"`
	NetCommission     decimal.Decimal `json:"netCommission"`
}

// AwardAmountFor picks the gross amount an agent's percentage applies to, based on
// which end of the deal the agent worked. Unknown classifications award nothing.
func AwardAmountFor(classification string, listingAmount, sellingAmount decimal.Decimal) decimal.Decimal {
	switch strings.ToUpper(strings.TrimSpace(classification)) {
	case ClassificationListingSide:
		return listingAmount
	case ClassificationSellingSide, ClassificationCoOperatingSide:
		return sellingAmount
	default:
		return decimal.Zero
	}
}

// ToAgentCommission copies a calculated split onto a trade agent entry.
func (r AgentCommissionResult) ToAgentCommission(agent AgentCommission) AgentCommission {
	agent.FeePlan = r.FeePlan.Code
	agent.Amount = NewAmount(r.Amount)
	agent.Tax = NewAmount(r.Tax)
	agent.Total = NewAmount(r.Total)
	agent.FeesDeducted = NewAmount(r.FeesDeducted)
	agent.TotalFees = NewAmount(r.TotalFees)
	agent.NetCommission = NewAmount(r.NetCommission)
	if r.BuyerRebateAmount.IsPositive() {
		agent.BuyerRebateIncluded = "yes"
		agent.BuyerRebateAmount = NewAmount(r.BuyerRebateAmount)
	}
	return agent
}
