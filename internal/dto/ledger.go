package dto

import (
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest posts a manual ledger entry. Exactly one of Debit and Credit must be positive.
type CreateLedgerEntryRequest struct {
	TradeNumber   string          `json:"tradeNumber"`
	AccountNumber string          `json:"accountNumber" binding:"required"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit" binding:"money"`
	Credit        decimal.Decimal `json:"credit" binding:"money"`
	Description   string          `json:"description" binding:"required"`
	Date          string          `json:"date" binding:"required,isodate"`
	ChequeDate    string          `json:"chequeDate" binding:"isodate"`
	EFTNumber     string          `json:"eftNumber"`
}

// ListLedgerEntriesParams defines query parameters for listing a trade's entries.
type ListLedgerEntriesParams struct {
	TradeNumber string  `form:"tradeNumber" binding:"required"`
	Limit       int     `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken   *string `form:"nextToken"`
}

// LedgerEntryResponse is a persisted ledger entry.
type LedgerEntryResponse struct {
	EntryID       string          `json:"entryID"`
	TradeNumber   string          `json:"tradeNumber,omitempty"`
	Position      int             `json:"position"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	ChequeDate    string          `json:"chequeDate,omitempty"`
	EFTNumber     string          `json:"eftNumber,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListLedgerEntriesResponse is a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a persisted entry.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		EntryID:       e.EntryID,
		TradeNumber:   e.TradeNumber,
		Position:      e.Position,
		AccountNumber: string(e.AccountCode),
		AccountName:   e.AccountName,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Description:   e.Description,
		Date:          e.EntryDate.Format(domain.DateLayout),
		EFTNumber:     e.EFTNumber,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
	if e.ChequeDate != nil {
		resp.ChequeDate = e.ChequeDate.Format(domain.DateLayout)
	}
	return resp
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}
