package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCode is a chart-of-accounts number.
type AccountCode string

const (
	AccountCashTrust               AccountCode = "10002"
	AccountCashCommissionTrust     AccountCode = "10004"
	AccountReceivableCommission    AccountCode = "12200"
	AccountOutsideBrokerPayable    AccountCode = "21100"
	AccountDepositLiability        AccountCode = "21300"
	AccountCommissionPayable       AccountCode = "21500"
	AccountHSTCollected            AccountCode = "23000"
	AccountHSTInputTaxCredit       AccountCode = "23001"
	AccountCommissionIncome        AccountCode = "40100"
	AccountFeeDeductedIncome       AccountCode = "44100"
	AccountAgentCommission         AccountCode = "50100"
	AccountOutsideBrokerCommission AccountCode = "51100"
	AccountReferralFees            AccountCode = "52100"
)

var accountNames = map[AccountCode]string{
	AccountCashTrust:               "Cash - Trust",
	AccountCashCommissionTrust:     "Cash - Commission Trust Account",
	AccountReceivableCommission:    "A/R - Commission From Deals",
	AccountOutsideBrokerPayable:    "Outside Broker Payable",
	AccountDepositLiability:        "Deposit Liability",
	AccountCommissionPayable:       "Commission Payable",
	AccountHSTCollected:            "HST Collected",
	AccountHSTInputTaxCredit:       "HST Input Tax Credit",
	AccountCommissionIncome:        "Commission Income",
	AccountFeeDeductedIncome:       "Fee Deducted Income",
	AccountAgentCommission:         "Agent's Commission",
	AccountOutsideBrokerCommission: "Outside Broker Commission",
	AccountReferralFees:            "Referral Fees",
}

// Name returns the chart-of-accounts name, or "" for an unknown code.
func (c AccountCode) Name() string {
	return accountNames[c]
}

// Known reports whether c is in the chart of accounts.
func (c AccountCode) Known() bool {
	_, ok := accountNames[c]
	return ok
}

// TransactionType indicates whether a ledger line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// DateBasis says which trade date a derived line is dated with.
type DateBasis string

const (
	DateBasisFinalized DateBasis = "FINALIZED"
	DateBasisClosing   DateBasis = "CLOSING"
)

// LedgerLine is one derived debit or credit posting. Exactly one of Debit and
// Credit is non-zero for a line that carries money.
type LedgerLine struct {
	Position    int             `json:"position"`
	AccountCode AccountCode     `json:"accountNumber"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	DateBasis   DateBasis       `json:"dateBasis"`
	ChequeDate  *time.Time      `json:"chequeDate,omitempty"`
	EFTNumber   string          `json:"eftNumber,omitempty"`
}

// NewDebitLine builds a debit line on code. The amount is rounded to cents.
func NewDebitLine(code AccountCode, amount decimal.Decimal, description string) LedgerLine {
	return LedgerLine{
		AccountCode: code,
		AccountName: code.Name(),
		Debit:       RoundMoney(amount),
		Credit:      decimal.Zero,
		Description: description,
	}
}

// NewCreditLine builds a credit line on code. The amount is rounded to cents.
func NewCreditLine(code AccountCode, amount decimal.Decimal, description string) LedgerLine {
	return LedgerLine{
		AccountCode: code,
		AccountName: code.Name(),
		Debit:       decimal.Zero,
		Credit:      RoundMoney(amount),
		Description: description,
	}
}

// Type is DEBIT when the line has a debit amount, CREDIT otherwise.
func (l LedgerLine) Type() TransactionType {
	if !l.Debit.IsZero() {
		return Debit
	}
	return Credit
}

// Amount is the non-zero side of the line.
func (l LedgerLine) Amount() decimal.Decimal {
	if !l.Debit.IsZero() {
		return l.Debit
	}
	return l.Credit
}

// IsZero reports whether the line moves no money.
func (l LedgerLine) IsZero() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// LedgerSummary totals a set of lines. ClosingBalance is credit minus debit.
type LedgerSummary struct {
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Balanced       bool            `json:"balanced"`
}

// Summarize totals debits and credits.
func Summarize(lines []LedgerLine) LedgerSummary {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return LedgerSummary{
		TotalDebit:     debit,
		TotalCredit:    credit,
		ClosingBalance: credit.Sub(debit),
		Balanced:       debit.Equal(credit),
	}
}

// EntryStatus tracks a persisted ledger entry's remote sync state.
type EntryStatus string

const (
	// EntryStatusPosted entries are final; either synced or no remote ledger is configured.
	EntryStatusPosted EntryStatus = "POSTED"
	// EntryStatusPending entries still need to be pushed to the remote accounting API.
	EntryStatusPending EntryStatus = "PENDING"
)

// LedgerEntry is a ledger line persisted in the local ledger.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	TradeNumber   string          `json:"tradeNumber,omitempty"`
	Position      int             `json:"position"`
	AccountCode   AccountCode     `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"date"`
	ChequeDate    *time.Time      `json:"chequeDate,omitempty"`
	EFTNumber     string          `json:"eftNumber,omitempty"`
	Status        EntryStatus     `json:"status"`
	SyncAttempts  int             `json:"syncAttempts"`
	LastSyncError *string         `json:"lastSyncError,omitempty"`
	AuditFields
}

// LineOf converts the entry back into a line, e.g. for re-sync or reports.
func (e LedgerEntry) LineOf() LedgerLine {
	return LedgerLine{
		Position:    e.Position,
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Description: e.Description,
		Date:        e.EntryDate,
		ChequeDate:  e.ChequeDate,
		EFTNumber:   e.EFTNumber,
	}
}
