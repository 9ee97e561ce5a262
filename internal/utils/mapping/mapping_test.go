package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainTrade_ColumnsOverrideDocument(t *testing.T) {
	finalized := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	m := models.Trade{
		TradeNumber:   "1042",
		Document:      []byte(`{"tradeNumber":"999","isFinalized":false,"keyInfo":{"streetNumber":"12","streetName":"Maple Ave"}}`),
		IsFinalized:   true,
		FinalizedDate: &finalized,
	}

	d, err := ToDomainTrade(m)

	require.NoError(t, err)
	assert.Equal(t, "1042", d.TradeNumber)
	assert.True(t, d.IsFinalized)
	assert.Equal(t, &finalized, d.FinalizedDate)
	assert.Equal(t, "12 Maple Ave", d.Address())
}

func TestToDomainTrade_BadDocument(t *testing.T) {
	_, err := ToDomainTrade(models.Trade{TradeNumber: "1", Document: []byte("{")})
	assert.ErrorContains(t, err, "failed to decode trade 1")
}

func TestLedgerEntryMapping_NullableColumns(t *testing.T) {
	m := ToModelLedgerEntry(domain.LedgerEntry{
		EntryID:     "e1",
		AccountCode: domain.AccountCashTrust,
		Debit:       decimal.NewFromInt(5),
		Status:      domain.EntryStatusPending,
	})
	assert.False(t, m.TradeNumber.Valid)
	assert.False(t, m.EFTNumber.Valid)
	assert.False(t, m.LastSyncError.Valid)
	assert.Equal(t, "10002", m.AccountNumber)

	m.LastSyncError.String, m.LastSyncError.Valid = "timeout", true
	d := ToDomainLedgerEntry(m)
	require.NotNil(t, d.LastSyncError)
	assert.Equal(t, "timeout", *d.LastSyncError)
	assert.Empty(t, d.TradeNumber)
	assert.Equal(t, domain.EntryStatusPending, d.Status)
}
