package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactionDetails(t *testing.T) {
	on := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	details := &domain.TransactionDetails{
		TradeNumber:   "1042",
		Address:       "12 Maple Ave",
		IsFinalized:   true,
		FinalizedDate: &on,
		GeneratedAt:   on,
		Details: domain.NewReportSection("Transaction Details", []domain.ReportRow{
			{Date: on, AccountCode: domain.AccountCommissionIncome, AccountName: "Commission Income", Credit: decimal.RequireFromString("22000"), Description: "Trade #: 1042 - 12 Maple Ave"},
			{Date: on, AccountCode: domain.AccountDepositLiability, AccountName: "Deposit Liability", Debit: decimal.RequireFromString("22000"), Description: "Trade #: 1042 - 12 Maple Ave"},
		}),
		TrustDeposits:   domain.NewReportSection("Trust Deposits", nil),
		CommissionTrust: domain.NewReportSection("Commission Trust", nil),
		RealEstateTrust: domain.NewReportSection("Real Estate Trust", nil),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionDetails(&buf, details))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Trade #", "1042"}, rows[0])
	assert.Equal(t, []string{"Status", "Finalized 2025-04-02"}, rows[2])
	assert.Equal(t, []string{"Transaction Details"}, rows[5])
	assert.Equal(t, "Date", rows[6][0])
	assert.Equal(t, string(domain.AccountCommissionIncome), rows[7][1])
	assert.Equal(t, "Trade #: 1042 - 12 Maple Ave", rows[7][5])

	total := rows[9]
	assert.Equal(t, "Total", total[0])
	assert.Equal(t, "22,000.00", total[3])
	assert.Equal(t, "22,000.00", total[4])

	var titles []string
	for _, r := range rows {
		if len(r) == 1 {
			titles = append(titles, r[0])
		}
	}
	assert.Equal(t, []string{"Transaction Details", "Trust Deposits", "Commission Trust", "Real Estate Trust"}, titles)
}

func TestWriteTransactionDetails_Nil(t *testing.T) {
	assert.Error(t, WriteTransactionDetails(&bytes.Buffer{}, nil))
}

func TestTransactionDetailsFilename(t *testing.T) {
	assert.Equal(t, "trade-1042-transaction-details.xlsx", TransactionDetailsFilename("1042"))
}
