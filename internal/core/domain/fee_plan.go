package domain

import "github.com/shopspring/decimal"

// FeePlanKind says how a plan's deduction is computed.
type FeePlanKind string

const (
	FeePlanFlat       FeePlanKind = "FLAT"
	FeePlanPercentage FeePlanKind = "PERCENTAGE"
	FeePlanFlexible   FeePlanKind = "FLEXIBLE"
)

// DefaultFeePlanCode is used when an agent split names no plan.
const DefaultFeePlanCode = "plan500"

// FeePlan is a brokerage fee schedule deducted from an agent's commission.
// For PERCENTAGE plans Value is a percent (10 means 10%); for FLAT plans it is a dollar amount.
type FeePlan struct {
	Code  string          `json:"code" yaml:"code"`
	Label string          `json:"label" yaml:"label"`
	Kind  FeePlanKind     `json:"kind" yaml:"kind"`
	Value decimal.Decimal `json:"value" yaml:"-"`
}

var hundred = decimal.NewFromInt(100)

// Deduction is the fee taken from amount under this plan. flexibleFee is only read
// for FLEXIBLE plans.
func (p FeePlan) Deduction(amount, flexibleFee decimal.Decimal) decimal.Decimal {
	switch p.Kind {
	case FeePlanFlat:
		return p.Value
	case FeePlanPercentage:
		return amount.Mul(p.Value).Div(hundred)
	case FeePlanFlexible:
		return flexibleFee
	default:
		return decimal.Zero
	}
}
