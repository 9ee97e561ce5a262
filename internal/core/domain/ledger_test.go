package domain_test

import (
	"testing"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	lines := []domain.LedgerLine{
		domain.NewDebitLine(domain.AccountDepositLiability, dec("100.004"), "d"),
		domain.NewCreditLine(domain.AccountCommissionIncome, dec("60"), "c"),
		domain.NewCreditLine(domain.AccountHSTCollected, dec("40"), "c"),
	}

	sum := domain.Summarize(lines)
	assert.True(t, sum.TotalDebit.Equal(dec("100")), "amounts are rounded to cents")
	assert.True(t, sum.TotalCredit.Equal(dec("100")))
	assert.True(t, sum.ClosingBalance.IsZero())
	assert.True(t, sum.Balanced)

	sum = domain.Summarize(lines[:2])
	assert.True(t, sum.ClosingBalance.Equal(dec("-40")))
	assert.False(t, sum.Balanced)
}

func TestLedgerLine_Sides(t *testing.T) {
	debit := domain.NewDebitLine(domain.AccountAgentCommission, dec("5"), "x")
	credit := domain.NewCreditLine(domain.AccountCommissionPayable, dec("7"), "x")
	zero := domain.NewCreditLine(domain.AccountFeeDeductedIncome, dec("0"), "x")

	assert.Equal(t, domain.Debit, debit.Type())
	assert.True(t, debit.Amount().Equal(dec("5")))
	assert.Equal(t, domain.Credit, credit.Type())
	assert.True(t, credit.Amount().Equal(dec("7")))
	assert.True(t, zero.IsZero())
	assert.Equal(t, "Agent's Commission", debit.AccountName)
}

func TestAccountCode_Name(t *testing.T) {
	assert.Equal(t, "A/R - Commission From Deals", domain.AccountReceivableCommission.Name())
	assert.True(t, domain.AccountReferralFees.Known())
	assert.False(t, domain.AccountCode("99999").Known())
	assert.Equal(t, "", domain.AccountCode("99999").Name())
}

func TestEFTNumbers(t *testing.T) {
	assert.Equal(t, "EFT301", domain.FormatEFTNumber(301))
	assert.Equal(t, "EFT301", domain.NormalizeEFTNumber(" 301 "))
	assert.Equal(t, "EFT301", domain.NormalizeEFTNumber("EFT301"))

	n, ok := domain.ParseEFTNumber("EFT0450")
	assert.True(t, ok)
	assert.Equal(t, int64(450), n)

	_, ok = domain.ParseEFTNumber("cheque")
	assert.False(t, ok)

	assert.Equal(t, int64(domain.FirstEFTNumber), domain.NextEFTNumberAfter(nil))
	assert.Equal(t, int64(domain.FirstEFTNumber), domain.NextEFTNumberAfter([]string{"", "123", "CHQ7"}))
	assert.Equal(t, int64(312), domain.NextEFTNumberAfter([]string{"EFT300", "EFT311", "EFT12", "999"}))
}

func TestNewReportSection(t *testing.T) {
	section := domain.NewReportSection("Trust", nil)
	assert.NotNil(t, section.Rows)
	assert.True(t, section.Summary.Balanced)

	section = domain.NewReportSection("Trust", []domain.ReportRow{
		{Debit: dec("10")},
		{Credit: dec("25")},
	})
	assert.True(t, section.Summary.ClosingBalance.Equal(dec("15")))
}
