package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
)

// ToModelTrade serializes the trade document for the JSONB column.
func ToModelTrade(d domain.Trade) (models.Trade, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return models.Trade{}, fmt.Errorf("failed to encode trade %s: %w", d.TradeNumber, err)
	}
	return models.Trade{
		TradeNumber:   d.TradeNumber,
		Document:      doc,
		IsFinalized:   d.IsFinalized,
		FallenThru:    d.FallenThru,
		FinalizedDate: d.FinalizedDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTrade decodes the stored document. Columns win over whatever the document says.
func ToDomainTrade(m models.Trade) (domain.Trade, error) {
	var d domain.Trade
	if len(m.Document) > 0 {
		if err := json.Unmarshal(m.Document, &d); err != nil {
			return domain.Trade{}, fmt.Errorf("failed to decode trade %s: %w", m.TradeNumber, err)
		}
	}
	d.TradeNumber = m.TradeNumber
	d.IsFinalized = m.IsFinalized
	d.FallenThru = m.FallenThru
	d.FinalizedDate = m.FinalizedDate
	d.AuditFields = ToDomainAuditFields(m.AuditFields)
	return d, nil
}
