package mapping

import (
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
)

// ToModelTrustEFT converts a domain TrustEFT to a model TrustEFT
func ToModelTrustEFT(d domain.TrustEFT) models.TrustEFT {
	return models.TrustEFT{
		EFTID:        d.EFTID,
		TradeNumber:  d.TradeNumber,
		EFTNumber:    d.EFTNumber,
		Account:      string(d.Account),
		Type:         toNullString(d.Type),
		Amount:       d.Amount,
		EFTDate:      d.Date,
		PaidTo:       toNullString(d.PaidTo),
		ReceivedFrom: toNullString(d.ReceivedFrom),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrustEFT converts a model TrustEFT to a domain TrustEFT
func ToDomainTrustEFT(m models.TrustEFT) domain.TrustEFT {
	return domain.TrustEFT{
		EFTID:        m.EFTID,
		TradeNumber:  m.TradeNumber,
		EFTNumber:    m.EFTNumber,
		Account:      domain.TrustAccount(m.Account),
		Type:         m.Type.String,
		Amount:       m.Amount,
		Date:         m.EFTDate,
		PaidTo:       m.PaidTo.String,
		ReceivedFrom: m.ReceivedFrom.String,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTrustEFTSlice converts a slice of model TrustEFTs to domain TrustEFTs
func ToDomainTrustEFTSlice(ms []models.TrustEFT) []domain.TrustEFT {
	ds := make([]domain.TrustEFT, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTrustEFT(m)
	}
	return ds
}
