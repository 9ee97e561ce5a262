package dto

import (
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NextEFTNumberResponse carries a freshly allocated EFT number.
type NextEFTNumberResponse struct {
	EFTNumber string `json:"eftNumber"`
}

// CreateTrustEFTRequest records a trust account transfer for a trade.
type CreateTrustEFTRequest struct {
	EFTNumber    string          `json:"eftNumber"`
	Account      string          `json:"account" binding:"required,oneof=COMMISSION_TRUST REAL_ESTATE_TRUST"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount" binding:"money"`
	Date         string          `json:"date" binding:"isodate"`
	PaidTo       string          `json:"paidTo"`
	ReceivedFrom string          `json:"receivedFrom"`
}

// TrustEFTResponse is a recorded trust transfer.
type TrustEFTResponse struct {
	EFTID        string          `json:"eftID"`
	TradeNumber  string          `json:"tradeNumber"`
	EFTNumber    string          `json:"eftNumber"`
	Account      string          `json:"account"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date,omitempty"`
	PaidTo       string          `json:"paidTo,omitempty"`
	ReceivedFrom string          `json:"receivedFrom,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToTrustEFTResponse converts a trust EFT.
func ToTrustEFTResponse(e *domain.TrustEFT) TrustEFTResponse {
	resp := TrustEFTResponse{
		EFTID:        e.EFTID,
		TradeNumber:  e.TradeNumber,
		EFTNumber:    e.EFTNumber,
		Account:      string(e.Account),
		Type:         e.Type,
		Amount:       e.Amount,
		PaidTo:       e.PaidTo,
		ReceivedFrom: e.ReceivedFrom,
		CreatedAt:    e.CreatedAt,
	}
	if e.Date != nil {
		resp.Date = e.Date.Format(domain.DateLayout)
	}
	return resp
}

// ToTrustEFTResponses converts a slice of trust EFTs.
func ToTrustEFTResponses(efts []domain.TrustEFT) []TrustEFTResponse {
	out := make([]TrustEFTResponse, len(efts))
	for i := range efts {
		out[i] = ToTrustEFTResponse(&efts[i])
	}
	return out
}

// ToDomain converts the request into an unsaved trust EFT.
func (r CreateTrustEFTRequest) ToDomain() (domain.TrustEFT, error) {
	eft := domain.TrustEFT{
		EFTNumber:    r.EFTNumber,
		Account:      domain.TrustAccount(r.Account),
		Type:         r.Type,
		Amount:       r.Amount,
		PaidTo:       r.PaidTo,
		ReceivedFrom: r.ReceivedFrom,
	}
	if r.Date != "" {
		d, err := domain.ParseDate(r.Date)
		if err != nil {
			return eft, err
		}
		eft.Date = &d
	}
	return eft, nil
}
