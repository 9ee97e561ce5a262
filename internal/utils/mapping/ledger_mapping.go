package mapping

import (
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:       d.EntryID,
		TradeNumber:   toNullString(d.TradeNumber),
		Position:      d.Position,
		AccountNumber: string(d.AccountCode),
		AccountName:   d.AccountName,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
		EntryDate:     d.EntryDate,
		ChequeDate:    d.ChequeDate,
		EFTNumber:     toNullString(d.EFTNumber),
		Status:        models.EntryStatus(d.Status),
		SyncAttempts:  d.SyncAttempts,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.LastSyncError != nil {
		m.LastSyncError = toNullString(*d.LastSyncError)
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:      m.EntryID,
		TradeNumber:  m.TradeNumber.String,
		Position:     m.Position,
		AccountCode:  domain.AccountCode(m.AccountNumber),
		AccountName:  m.AccountName,
		Debit:        m.Debit,
		Credit:       m.Credit,
		Description:  m.Description,
		EntryDate:    m.EntryDate,
		ChequeDate:   m.ChequeDate,
		EFTNumber:    m.EFTNumber.String,
		Status:       domain.EntryStatus(m.Status),
		SyncAttempts: m.SyncAttempts,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.LastSyncError.Valid {
		msg := m.LastSyncError.String
		d.LastSyncError = &msg
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
