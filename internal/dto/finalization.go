package dto

import (
	"fmt"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinalizeTradeRequest asks for a trade to be finalized or previewed. Dates are YYYY-MM-DD.
type FinalizeTradeRequest struct {
	FinalizedDate string           `json:"finalizedDate" binding:"isodate"`
	ClosingDate   string           `json:"closingDate" binding:"isodate"`
	FallenThru    bool             `json:"fallenThru"`
	Side          string           `json:"side" binding:"omitempty,oneof='Listing Side' 'Selling Side'"`
	ReceivedFrom  string           `json:"receivedFrom"`
	PaymentAmount *decimal.Decimal `json:"paymentAmount" binding:"omitempty,money"`
	EFTNumber     string           `json:"eftNumber"`
}

// ToCommand converts the request into a domain command.
func (r FinalizeTradeRequest) ToCommand(tradeNumber, userID string) (domain.FinalizeCommand, error) {
	cmd := domain.FinalizeCommand{
		TradeNumber:   tradeNumber,
		FallenThru:    r.FallenThru,
		Side:          r.Side,
		ReceivedFrom:  r.ReceivedFrom,
		PaymentAmount: r.PaymentAmount,
		EFTNumber:     r.EFTNumber,
		UserID:        userID,
	}
	if r.FinalizedDate != "" {
		d, err := domain.ParseDate(r.FinalizedDate)
		if err != nil {
			return cmd, fmt.Errorf("finalizedDate: %w", err)
		}
		cmd.FinalizedDate = &d
	}
	if r.ClosingDate != "" {
		d, err := domain.ParseDate(r.ClosingDate)
		if err != nil {
			return cmd, fmt.Errorf("closingDate: %w", err)
		}
		cmd.ClosingDate = &d
	}
	return cmd, nil
}

// LedgerLineResponse is a derived ledger line.
type LedgerLineResponse struct {
	Position      int             `json:"position"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	DateBasis     string          `json:"dateBasis"`
	ChequeDate    string          `json:"chequeDate,omitempty"`
	EFTNumber     string          `json:"eftNumber,omitempty"`
}

// FinalizationResponse is returned by both preview and finalize.
type FinalizationResponse struct {
	TradeNumber   string               `json:"tradeNumber"`
	FinalizedDate string               `json:"finalizedDate"`
	FallenThru    bool                 `json:"fallenThru"`
	EFTNumber     string               `json:"eftNumber,omitempty"`
	Lines         []LedgerLineResponse `json:"lines"`
	Summary       domain.LedgerSummary `json:"summary"`
	Synced        bool                 `json:"synced"`
}

// ToLedgerLineResponses converts derived lines.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	out := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		out[i] = LedgerLineResponse{
			Position:      l.Position,
			AccountNumber: string(l.AccountCode),
			AccountName:   l.AccountName,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
			Date:          l.Date.Format(domain.DateLayout),
			DateBasis:     string(l.DateBasis),
			EFTNumber:     l.EFTNumber,
		}
		if l.ChequeDate != nil {
			out[i].ChequeDate = l.ChequeDate.Format(domain.DateLayout)
		}
	}
	return out
}

// ToFinalizationResponse converts a finalization result.
func ToFinalizationResponse(r *domain.FinalizationResult) FinalizationResponse {
	resp := FinalizationResponse{
		TradeNumber: r.TradeNumber,
		FallenThru:  r.FallenThru,
		EFTNumber:   r.EFTNumber,
		Lines:       ToLedgerLineResponses(r.Lines),
		Summary:     r.Summary,
		Synced:      r.Synced,
	}
	if !r.FinalizedDate.IsZero() {
		resp.FinalizedDate = r.FinalizedDate.Format(domain.DateLayout)
	}
	return resp
}
