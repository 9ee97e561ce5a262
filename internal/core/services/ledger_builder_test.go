package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amt(s string) domain.Amount {
	return domain.NewAmount(dec(s))
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// heldTrade is a trade where the brokerage holds a 20,000 deposit against 25,300 of commission.
func heldTrade() *domain.Trade {
	return &domain.Trade{
		TradeNumber: "1042",
		KeyInfo:     domain.KeyInfo{StreetNumber: "12", StreetName: "Maple Ave", CloseDate: "2025-03-31"},
		TrustRecords: []domain.TrustRecord{
			{Amount: amt("20000"), WeHold: domain.WeHoldYes},
		},
		Commission: domain.Commission{CommissionIncomeRows: []domain.CommissionIncomeRow{
			{End: domain.EndListingSide, ListingAmount: amt("12000"), ListingTax: amt("1800")},
			{End: domain.EndSellingSide, SellingAmount: amt("10000"), SellingTax: amt("1500")},
		}},
		AgentCommissionList: []domain.AgentCommission{{
			AgentName:     "A. Agent",
			Amount:        amt("12000"),
			Tax:           amt("1800"),
			Total:         amt("13800"),
			FeesDeducted:  amt("500"),
			TotalFees:     amt("575"),
			NetCommission: amt("13225"),
		}},
		OutsideBrokers: []domain.OutsideBroker{{Type: domain.OutsideBrokerTypeListing, Company: "Listing Realty"}},
	}
}

func notHeldTrade() *domain.Trade {
	t := heldTrade()
	t.TrustRecords[0].WeHold = domain.WeHoldNo
	t.AgentCommissionList[0] = domain.AgentCommission{
		AgentName:     "B. Agent",
		Amount:        amt("10000"),
		Tax:           amt("1500"),
		Total:         amt("11500"),
		FeesDeducted:  amt("500"),
		TotalFees:     amt("575"),
		NetCommission: amt("10925"),
	}
	return t
}

type wantLine struct {
	code   domain.AccountCode
	debit  string
	credit string
	basis  domain.DateBasis
}

func assertLines(t *testing.T, want []wantLine, got []domain.LedgerLine) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		l := got[i]
		assert.Equal(t, i+1, l.Position, "line %d position", i+1)
		assert.Equal(t, w.code, l.AccountCode, "line %d account", i+1)
		assert.Equal(t, w.code.Name(), l.AccountName, "line %d account name", i+1)
		assert.True(t, l.Debit.Equal(dec(w.debit)), "line %d debit: got %s want %s", i+1, l.Debit, w.debit)
		assert.True(t, l.Credit.Equal(dec(w.credit)), "line %d credit: got %s want %s", i+1, l.Credit, w.credit)
		assert.Equal(t, w.basis, l.DateBasis, "line %d date basis", i+1)
		if w.basis == domain.DateBasisClosing {
			if assert.NotNil(t, l.ChequeDate, "line %d cheque date", i+1) {
				assert.Equal(t, l.Date, *l.ChequeDate, "line %d cheque date", i+1)
			}
		} else {
			assert.Nil(t, l.ChequeDate, "line %d cheque date", i+1)
		}
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 4, 15, 13, 30, 0, 0, time.UTC)
}

func TestLedgerBuilder_WeHoldWithShortfall(t *testing.T) {
	b := services.NewLedgerBuilder(dec("0.15"), services.WithClock(fixedClock))
	params := domain.LedgerParams{
		FinalizedDate: date("2025-04-02"),
		ClosingDate:   date("2025-04-05"),
		Payment:       &domain.PaymentReceipt{ReceivedFrom: "Smith Law", Amount: dec("5300"), EFTNumber: "EFT301"},
	}

	lines := b.Build(heldTrade(), params)

	f, c := domain.DateBasisFinalized, domain.DateBasisClosing
	assertLines(t, []wantLine{
		{domain.AccountCommissionPayable, "0", "13225", f},
		{domain.AccountAgentCommission, "12000", "0", f},
		{domain.AccountHSTInputTaxCredit, "1800", "0", f},
		{domain.AccountFeeDeductedIncome, "0", "500", f},
		{domain.AccountHSTInputTaxCredit, "0", "75", f},
		{domain.AccountCommissionIncome, "0", "22000", f},
		{domain.AccountHSTCollected, "0", "3300", f},
		{domain.AccountDepositLiability, "20000", "0", f},
		{domain.AccountReceivableCommission, "5300", "0", f},
		{domain.AccountOutsideBrokerPayable, "0", "11500", f},
		{domain.AccountOutsideBrokerCommission, "10000", "0", f},
		{domain.AccountHSTInputTaxCredit, "1500", "0", f},
		{domain.AccountCashCommissionTrust, "5300", "0", c},
		{domain.AccountReceivableCommission, "0", "5300", c},
	}, lines)

	assert.Equal(t, "Trade #: 1042 - 12 Maple Ave", lines[0].Description)
	assert.Equal(t, "2025-04-02", lines[0].Date.Format(domain.DateLayout))
	assert.Empty(t, lines[0].EFTNumber)

	receipt := lines[12]
	assert.Equal(t, "Trade #: 1042 - 12 Maple Ave - Received From: Smith Law", receipt.Description)
	assert.Equal(t, "2025-04-05", receipt.Date.Format(domain.DateLayout))
	assert.Equal(t, "EFT301", receipt.EFTNumber)
	assert.Equal(t, "EFT301", lines[13].EFTNumber)

	sum := domain.Summarize(lines)
	assert.True(t, sum.Balanced, "debit %s credit %s", sum.TotalDebit, sum.TotalCredit)
	assert.True(t, sum.TotalDebit.Equal(dec("55900")))
}

func TestLedgerBuilder_WeHoldDepositCoversCommission(t *testing.T) {
	trade := heldTrade()
	trade.TrustRecords[0].Amount = amt("30000")
	b := services.NewLedgerBuilder(dec("0.15"), services.WithClock(fixedClock))

	lines := b.Build(trade, domain.LedgerParams{FinalizedDate: date("2025-04-02")})

	require.Len(t, lines, 12, "no receipt lines without a shortfall")
	refund := lines[8]
	assert.Equal(t, domain.AccountDepositLiability, refund.AccountCode)
	assert.True(t, refund.Credit.Equal(dec("4700")))
	for _, l := range lines {
		assert.Equal(t, domain.DateBasisFinalized, l.DateBasis)
	}
	assert.True(t, domain.Summarize(lines).Balanced)
}

func TestLedgerBuilder_WeHoldBuyerRebate(t *testing.T) {
	trade := heldTrade()
	trade.AgentCommissionList[0].BuyerRebateIncluded = "yes"
	trade.AgentCommissionList[0].BuyerRebateAmount = amt("250")
	trade.AgentCommissionList[0].NetCommission = amt("12975")
	b := services.NewLedgerBuilder(dec("0.15"), services.WithClock(fixedClock))

	lines := b.Build(trade, domain.LedgerParams{FinalizedDate: date("2025-04-02")})

	require.Len(t, lines, 15)
	rebate := lines[12]
	assert.Equal(t, domain.AccountReferralFees, rebate.AccountCode)
	assert.True(t, rebate.Credit.Equal(dec("250")))
	assert.Equal(t, "Trade #: 1042 - Buyer Rebate", rebate.Description)
	assert.Equal(t, domain.DateBasisFinalized, rebate.DateBasis)
	assert.Equal(t, domain.AccountCashCommissionTrust, lines[13].AccountCode)
	assert.True(t, domain.Summarize(lines).Balanced)
}

func TestLedgerBuilder_ClosingDateDefaults(t *testing.T) {
	b := services.NewLedgerBuilder(dec("0.15"), services.WithClock(fixedClock))

	lines := b.Build(heldTrade(), domain.LedgerParams{})
	last := lines[len(lines)-1]
	assert.Equal(t, "2025-03-31", last.Date.Format(domain.DateLayout), "falls back to the trade's close date")
	assert.Equal(t, "2025-04-15", lines[0].Date.Format(domain.DateLayout), "finalized date defaults to today")

	trade := heldTrade()
	trade.KeyInfo.CloseDate = ""
	lines = b.Build(trade, domain.LedgerParams{FinalizedDate: date("2025-04-02")})
	last = lines[len(lines)-1]
	assert.Equal(t, "2025-04-15", last.Date.Format(domain.DateLayout), "then to today")
}

func TestLedgerBuilder_NotHeldSellingSide(t *testing.T) {
	b := services.NewLedgerBuilder(dec("0.15"), services.WithClock(fixedClock))
	params := domain.LedgerParams{
		FinalizedDate: date("2025-04-02"),
		ClosingDate:   date("2025-04-05"),
		Payment:       &domain.PaymentReceipt{ReceivedFrom: "Listing Realty", Amount: dec("11500"), EFTNumber: "EFT305"},
	}

	lines := b.Build(notHeldTrade(), params)

	f, c := domain.DateBasisFinalized, domain.DateBasisClosing
	assertLines(t, []wantLine{
		{domain.AccountCommissionIncome, "0", "10000", f},
		{domain.AccountHSTInputTaxCredit, "1500", "0", f},
		{domain.AccountHSTCollected, "0", "1500", f},
		{domain.AccountAgentCommission, "10000", "0", f},
		{domain.AccountCommissionPayable, "0", "10925", f},
		{domain.AccountFeeDeductedIncome, "0", "500", f},
		{domain.AccountHSTInputTaxCredit, "0", "75", f},
		{domain.AccountReceivableCommission, "11500", "0", f},
		{domain.AccountCashCommissionTrust, "11500", "0", c},
		{domain.AccountReceivableCommission, "0", "11500", c},
	}, lines)

	assert.Equal(t, "Trade #: 1042 - 12 Maple Ave", lines[7].Description)
	assert.Equal(t, "Trade #: 1042 - Received From: Listing Realty", lines[8].Description)
	assert.Equal(t, "EFT305", lines[7].EFTNumber)
	assert.Equal(t, "2025-04-05", lines[9].Date.Format(domain.DateLayout))
	assert.True(t, domain.Summarize(lines).Balanced)
}

func TestLedgerBuilder_NotHeldListingSide(t *testing.T) {
	b := services.NewLedgerBuilder(dec("0.13"), services.WithClock(fixedClock))

	lines := b.Build(notHeldTrade(), domain.LedgerParams{Side: "Listing Side"})

	require.Len(t, lines, 7, "no receipt lines without a payment")
	assert.True(t, lines[0].Credit.Equal(dec("12000")))
	assert.True(t, lines[1].Debit.Equal(dec("1560")), "tax uses the configured rate")
	assert.True(t, lines[2].Credit.Equal(dec("1560")))
}

func TestLedgerBuilder_NoTrustRecordsIsNotHeld(t *testing.T) {
	trade := notHeldTrade()
	trade.TrustRecords = nil
	b := services.NewLedgerBuilder(decimal.Zero, services.WithClock(fixedClock))

	lines := b.Build(trade, domain.LedgerParams{Payment: &domain.PaymentReceipt{Amount: decimal.Zero}})

	require.Len(t, lines, 7)
	assert.True(t, lines[1].Debit.Equal(dec("1500")), "zero rate falls back to the default HST rate")
}

func TestLedgerBuilder_TodayUsesConfiguredLocation(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	require.NoError(t, err)
	lateEvening := func() time.Time { return time.Date(2025, 4, 16, 3, 0, 0, 0, time.UTC) }
	trade := heldTrade()
	trade.KeyInfo.CloseDate = ""

	utc := services.NewLedgerBuilder(dec("0.15"), services.WithClock(lateEvening)).Build(trade, domain.LedgerParams{})
	local := services.NewLedgerBuilder(dec("0.15"), services.WithClock(lateEvening), services.WithLocation(vancouver)).Build(trade, domain.LedgerParams{})

	assert.Equal(t, "2025-04-16", utc[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-04-15", local[0].Date.Format(domain.DateLayout))
}
