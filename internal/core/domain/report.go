package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRow is one printed row of a transaction details report.
type ReportRow struct {
	Date        time.Time       `json:"date"`
	AccountCode AccountCode     `json:"accountNumber"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	EFTNumber   string          `json:"eftNumber,omitempty"`
}

// ReportSection is a titled group of rows with its own totals.
type ReportSection struct {
	Title   string        `json:"title"`
	Rows    []ReportRow   `json:"rows"`
	Summary LedgerSummary `json:"summary"`
}

// TransactionDetails is the printable ledger picture of one trade.
type TransactionDetails struct {
	TradeNumber     string        `json:"tradeNumber"`
	Address         string        `json:"address"`
	IsFinalized     bool          `json:"isFinalized"`
	FinalizedDate   *time.Time    `json:"finalizedDate,omitempty"`
	Details         ReportSection `json:"details"`
	TrustDeposits   ReportSection `json:"trustDeposits"`
	CommissionTrust ReportSection `json:"commissionTrust"`
	RealEstateTrust ReportSection `json:"realEstateTrust"`
	GeneratedAt     time.Time     `json:"generatedAt"`
}

// NewReportSection totals rows into a section.
func NewReportSection(title string, rows []ReportRow) ReportSection {
	lines := make([]LedgerLine, len(rows))
	for i, r := range rows {
		lines[i] = LedgerLine{Debit: r.Debit, Credit: r.Credit}
	}
	if rows == nil {
		rows = []ReportRow{}
	}
	return ReportSection{Title: title, Rows: rows, Summary: Summarize(lines)}
}

// ReportRowFromLine copies a line into a report row.
func ReportRowFromLine(l LedgerLine) ReportRow {
	return ReportRow{
		Date:        l.Date,
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		EFTNumber:   l.EFTNumber,
	}
}
