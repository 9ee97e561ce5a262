package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt records money received to settle a trade's commission, either the
// outside broker's payment (we do not hold the deposit) or the shortfall over the deposit.
type PaymentReceipt struct {
	ReceivedFrom string
	Amount       decimal.Decimal
	EFTNumber    string
}

// LedgerParams is everything besides the trade that ledger derivation reads.
type LedgerParams struct {
	FinalizedDate time.Time
	// ClosingDate dates the trailing cash-receipt lines. Zero means the trade's close date, then today.
	ClosingDate time.Time
	// Side picks which commission row books income when the brokerage does not hold the deposit.
	Side    string
	Payment *PaymentReceipt
}

// FinalizeCommand asks for a trade to be finalized.
type FinalizeCommand struct {
	TradeNumber   string
	FinalizedDate *time.Time
	ClosingDate   *time.Time
	FallenThru    bool
	Side          string
	ReceivedFrom  string
	PaymentAmount *decimal.Decimal
	EFTNumber     string
	UserID        string
}

// PaymentSuggestion is the default payment receipt offered for a trade.
type PaymentSuggestion struct {
	TradeNumber     string          `json:"tradeNumber"`
	WeHold          bool            `json:"weHold"`
	Deposit         decimal.Decimal `json:"deposit"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	Required        bool            `json:"required"`
	RequiresEFT     bool            `json:"requiresEFT"`
	ReceivedFrom    string          `json:"receivedFrom"`
	Amount          decimal.Decimal `json:"amount"`
}

// FinalizationResult reports what finalizing a trade did.
type FinalizationResult struct {
	TradeNumber   string        `json:"tradeNumber"`
	FinalizedDate time.Time     `json:"finalizedDate"`
	FallenThru    bool          `json:"fallenThru"`
	EFTNumber     string        `json:"eftNumber,omitempty"`
	Lines         []LedgerLine  `json:"lines"`
	Entries       []LedgerEntry `json:"entries"`
	Summary       LedgerSummary `json:"summary"`
	Synced        bool          `json:"synced"`
}
