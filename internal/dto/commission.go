package dto

import (
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateCommissionRequest describes an agent split to be priced. AwardAmount wins
// over the classification lookup when both are given.
type CalculateCommissionRequest struct {
	Classification       string           `json:"classification" binding:"omitempty,oneof='LISTING SIDE' 'SELLING SIDE' 'CO-OPERATING SIDE'"`
	ListingAmount        decimal.Decimal  `json:"listingAmount" binding:"money"`
	SellingAmount        decimal.Decimal  `json:"sellingAmount" binding:"money"`
	AwardAmount          *decimal.Decimal `json:"awardAmount" binding:"omitempty,money"`
	Percentage           *decimal.Decimal `json:"percentage" binding:"omitempty,percent"`
	FeePlan              string           `json:"feePlan"`
	FlexibleFeesDeducted decimal.Decimal  `json:"flexibleFeesDeducted" binding:"money"`
	BuyerRebateIncluded  bool             `json:"buyerRebateIncluded"`
	BuyerRebateAmount    decimal.Decimal  `json:"buyerRebateAmount" binding:"money"`
}

// CommissionResponse is a priced agent split.
type CommissionResponse struct {
	FeePlan           string          `json:"feePlan"`
	FeePlanLabel      string          `json:"feePlanLabel"`
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

// FeePlanResponse describes one fee plan.
type FeePlanResponse struct {
	Code  string          `json:"code"`
	Label string          `json:"label"`
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// ToCommissionResponse converts a calculated split.
func ToCommissionResponse(r *domain.AgentCommissionResult) CommissionResponse {
	return CommissionResponse{
		FeePlan:           r.FeePlan.Code,
		FeePlanLabel:      r.FeePlan.Label,
		AwardAmount:       r.AwardAmount,
		Amount:            r.Amount,
		Tax:               r.Tax,
		Total:             r.Total,
		FeesDeducted:      r.FeesDeducted,
		TaxOnFees:         r.TaxOnFees,
		TotalFees:         r.TotalFees,
		BuyerRebateAmount: r.BuyerRebateAmount,
		NetCommission:     r.NetCommission,
	}
}

// ToFeePlanResponses converts the fee plan catalog.
func ToFeePlanResponses(plans []domain.FeePlan) []FeePlanResponse {
	out := make([]FeePlanResponse, len(plans))
	for i, p := range plans {
		out[i] = FeePlanResponse{Code: p.Code, Label: p.Label, Kind: string(p.Kind), Value: p.Value}
	}
	return out
}
