package dto

import (
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// UpsertTradeRequest is a full trade document. The trade number comes from the path.
type UpsertTradeRequest struct {
	domain.Trade
}

// TradeResponse wraps a stored trade with the figures the finalize screen shows.
type TradeResponse struct {
	domain.Trade
	Address         string                  `json:"address"`
	Deposit         string                  `json:"deposit"`
	WeHold          bool                    `json:"weHold"`
	Totals          domain.CommissionTotals `json:"totals"`
	TotalCommission string                  `json:"totalCommission"`
	TotalRebate     string                  `json:"totalBuyerRebate"`
}

// ToTradeResponse converts a domain trade.
func ToTradeResponse(t *domain.Trade) TradeResponse {
	totals := t.Totals()
	return TradeResponse{
		Trade:           *t,
		Address:         t.Address(),
		Deposit:         t.Deposit().StringFixed(domain.MoneyPlaces),
		WeHold:          t.WeHold(),
		Totals:          totals,
		TotalCommission: totals.Total().StringFixed(domain.MoneyPlaces),
		TotalRebate:     t.TotalBuyerRebate().StringFixed(domain.MoneyPlaces),
	}
}
