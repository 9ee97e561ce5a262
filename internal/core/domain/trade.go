package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Commission row ends and agent classifications as they appear in trade documents.
const (
	EndListingSide = "Listing Side"
	EndSellingSide = "Selling Side"

	ClassificationListingSide     = "LISTING SIDE"
	ClassificationSellingSide     = "SELLING SIDE"
	ClassificationCoOperatingSide = "CO-OPERATING SIDE"

	OutsideBrokerTypeListing = "Listing Broker"

	WeHoldYes = "Yes"
	WeHoldNo  = "No"
)

// Trade is a real-estate transaction document. Only the fields the commission and
// ledger rules read are modelled.
type Trade struct {
	TradeNumber         string            `json:"tradeNumber"`
	KeyInfo             KeyInfo           `json:"keyInfo"`
	TrustRecords        []TrustRecord     `json:"trustRecords"`
	Commission          Commission        `json:"commission"`
	AgentCommissionList []AgentCommission `json:"agentCommissionList"`
	OutsideBrokers      []OutsideBroker   `json:"outsideBrokers"`
	IsFinalized         bool              `json:"isFinalized"`
	FallenThru          bool              `json:"fallenThru"`
	FinalizedDate       *time.Time        `json:"finalizedDate,omitempty"`
	AuditFields
}

// KeyInfo holds the property address and closing date.
type KeyInfo struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	City         string `json:"city,omitempty"`
	CloseDate    string `json:"closeDate"`
}

// TrustRecord is a deposit received for the trade.
type TrustRecord struct {
	Amount       Amount `json:"amount"`
	WeHold       string `json:"weHold"`
	ReceivedFrom string `json:"receivedFrom,omitempty"`
	Date         string `json:"date,omitempty"`
}

// Commission is the commission income section of a trade.
type Commission struct {
	CommissionIncomeRows []CommissionIncomeRow `json:"commissionIncomeRows"`
}

// CommissionIncomeRow carries one side's gross commission and its tax.
type CommissionIncomeRow struct {
	End           string `json:"end"`
	ListingAmount Amount `json:"listingAmount"`
	ListingTax    Amount `json:"listingTax"`
	SellingAmount Amount `json:"sellingAmount"`
	SellingTax    Amount `json:"sellingTax"`
}

// AgentCommission is an agent's split, as calculated when the agent was added.
type AgentCommission struct {
	AgentID             string `json:"agentId,omitempty"`
	AgentName           string `json:"agentName,omitempty"`
	Classification      string `json:"classification,omitempty"`
	Percentage          Amount `json:"percentage"`
	FeePlan             string `json:"feePlan,omitempty"`
	Amount              Amount `json:"amount"`
	Tax                 Amount `json:"tax"`
	Total               Amount `json:"total"`
	FeesDeducted        Amount `json:"feesDeducted"`
	TotalFees           Amount `json:"totalFees"`
	NetCommission       Amount `json:"netCommission"`
	BuyerRebateIncluded string `json:"buyerRebateIncluded,omitempty"`
	BuyerRebateAmount   Amount `json:"buyerRebateAmount"`
}

// OutsideBroker is a cooperating brokerage on the other end of the trade.
type OutsideBroker struct {
	Type    string `json:"type"`
	End     string `json:"end"`
	Company string `json:"company"`
	Name    string `json:"name,omitempty"`
}

// RebateIncluded reports whether the agent's buyer rebate applies.
func (a AgentCommission) RebateIncluded() bool {
	return strings.EqualFold(strings.TrimSpace(a.BuyerRebateIncluded), "yes")
}

// TaxOnFeesDeducted is totalFees - feesDeducted, or zero unless both are set.
func (a AgentCommission) TaxOnFeesDeducted() decimal.Decimal {
	if a.TotalFees.IsZero() || a.FeesDeducted.IsZero() {
		return decimal.Zero
	}
	return a.TotalFees.Sub(a.FeesDeducted.Decimal)
}

// Deposit is the first trust record's amount, zero when there is none.
func (t *Trade) Deposit() decimal.Decimal {
	if len(t.TrustRecords) == 0 {
		return decimal.Zero
	}
	return t.TrustRecords[0].Amount.Decimal
}

// WeHold reports whether the brokerage holds the deposit in trust.
func (t *Trade) WeHold() bool {
	if len(t.TrustRecords) == 0 {
		return false
	}
	return strings.TrimSpace(t.TrustRecords[0].WeHold) == WeHoldYes
}

// ListingRow returns the "Listing Side" commission row, falling back to the first row.
func (t *Trade) ListingRow() CommissionIncomeRow {
	return t.commissionRow(EndListingSide)
}

// SellingRow returns the "Selling Side" commission row, falling back to the first row.
func (t *Trade) SellingRow() CommissionIncomeRow {
	return t.commissionRow(EndSellingSide)
}

func (t *Trade) commissionRow(end string) CommissionIncomeRow {
	rows := t.Commission.CommissionIncomeRows
	for _, r := range rows {
		if r.End == end {
			return r
		}
	}
	if len(rows) > 0 {
		return rows[0]
	}
	return CommissionIncomeRow{}
}

// PrimaryAgent returns the first agent on the trade. Ledger derivation only books one agent.
func (t *Trade) PrimaryAgent() AgentCommission {
	if len(t.AgentCommissionList) == 0 {
		return AgentCommission{}
	}
	return t.AgentCommissionList[0]
}

// CommissionTotals is the gross commission picture of a trade.
type CommissionTotals struct {
	ListingAmount decimal.Decimal `json:"listingAmount"`
	ListingTax    decimal.Decimal `json:"listingTax"`
	SellingAmount decimal.Decimal `json:"sellingAmount"`
	SellingTax    decimal.Decimal `json:"sellingTax"`
}

// Total is listing + selling + both taxes.
func (c CommissionTotals) Total() decimal.Decimal {
	return c.ListingAmount.Add(c.SellingAmount).Add(c.ListingTax).Add(c.SellingTax)
}

// Totals collects the listing and selling figures used by the ledger rules.
func (t *Trade) Totals() CommissionTotals {
	listing := t.ListingRow()
	selling := t.SellingRow()
	return CommissionTotals{
		ListingAmount: listing.ListingAmount.Decimal,
		ListingTax:    listing.ListingTax.Decimal,
		SellingAmount: selling.SellingAmount.Decimal,
		SellingTax:    selling.SellingTax.Decimal,
	}
}

// TotalBuyerRebate sums the rebates of every agent that has one included.
func (t *Trade) TotalBuyerRebate() decimal.Decimal {
	total := decimal.Zero
	for _, a := range t.AgentCommissionList {
		if a.RebateIncluded() && a.BuyerRebateAmount.IsPositive() {
			total = total.Add(a.BuyerRebateAmount.Decimal)
		}
	}
	return total
}

// Address is "<streetNumber> <streetName>", trimmed.
func (t *Trade) Address() string {
	return strings.TrimSpace(t.KeyInfo.StreetNumber + " " + t.KeyInfo.StreetName)
}

// TradeRef is the "Trade #: <n>" prefix every ledger description starts with.
func (t *Trade) TradeRef() string {
	return TradeRef(t.TradeNumber)
}

// TradeRef formats a trade number reference.
func TradeRef(tradeNumber string) string {
	return fmt.Sprintf("Trade #: %s", tradeNumber)
}

// CommissionDescription is the description on finalized-dated commission lines.
func (t *Trade) CommissionDescription() string {
	return fmt.Sprintf("%s - %s", t.TradeRef(), t.Address())
}

// ListingBrokerCompany is the company of the outside listing broker, if any.
func (t *Trade) ListingBrokerCompany() string {
	for _, b := range t.OutsideBrokers {
		if b.Type == OutsideBrokerTypeListing || strings.Contains(strings.ToLower(b.End), "listing") {
			return b.Company
		}
	}
	return ""
}

// ClosingDate parses KeyInfo.CloseDate. ok is false when it is empty or malformed.
func (t *Trade) ClosingDate() (time.Time, bool) {
	d, err := ParseDate(t.KeyInfo.CloseDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
