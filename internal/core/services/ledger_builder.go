package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerBuilder derives the double-entry lines that finalize a trade.
type LedgerBuilder struct {
	hstRate decimal.Decimal
	clock   func() time.Time
	loc     *time.Location
}

// LedgerBuilderOption configures a LedgerBuilder
type LedgerBuilderOption func(*LedgerBuilder)

// WithClock overrides the clock used to default missing dates.
func WithClock(clock func() time.Time) LedgerBuilderOption {
	return func(b *LedgerBuilder) {
		b.clock = clock
	}
}

// WithLocation sets the zone whose calendar day counts as today.
func WithLocation(loc *time.Location) LedgerBuilderOption {
	return func(b *LedgerBuilder) {
		b.loc = loc
	}
}

// NewLedgerBuilder creates a builder. A non-positive rate falls back to DefaultHSTRate.
func NewLedgerBuilder(hstRate decimal.Decimal, opts ...LedgerBuilderOption) *LedgerBuilder {
	if !hstRate.IsPositive() {
		hstRate = DefaultHSTRate
	}
	b := &LedgerBuilder{hstRate: hstRate, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// localDay is the calendar day of t in loc, or in t's own zone when loc is nil.
func localDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return domain.DateOnly(t)
}

// lineSet accumulates lines with their dates.
type lineSet struct {
	lines     []domain.LedgerLine
	finalized time.Time
	closing   time.Time
}

func (s *lineSet) add(l domain.LedgerLine, basis domain.DateBasis, eft string) {
	l.DateBasis = basis
	l.Date = s.finalized
	if basis == domain.DateBasisClosing {
		l.Date = s.closing
		cheque := s.closing
		l.ChequeDate = &cheque
	}
	l.EFTNumber = eft
	l.Position = len(s.lines) + 1
	s.lines = append(s.lines, l)
}

// Build returns the ledger lines for trade. Zero-valued lines are kept so the
// layout of the journal is stable; callers decide whether to persist them.
func (b *LedgerBuilder) Build(trade *domain.Trade, p domain.LedgerParams) []domain.LedgerLine {
	today := localDay(b.clock(), b.loc)
	set := &lineSet{finalized: p.FinalizedDate, closing: p.ClosingDate}
	if set.finalized.IsZero() {
		set.finalized = today
	}
	if set.closing.IsZero() {
		if d, ok := trade.ClosingDate(); ok {
			set.closing = d
		} else {
			set.closing = today
		}
	}

	if trade.WeHold() {
		b.buildWeHold(set, trade, p.Payment)
	} else {
		b.buildNotHeld(set, trade, p.Side, p.Payment)
	}
	return set.lines
}

func (b *LedgerBuilder) buildWeHold(set *lineSet, trade *domain.Trade, payment *domain.PaymentReceipt) {
	desc := trade.CommissionDescription()
	agent := trade.PrimaryAgent()
	totals := trade.Totals()
	total := totals.Total()
	deposit := trade.Deposit()

	set.add(domain.NewCreditLine(domain.AccountCommissionPayable, agent.NetCommission.Decimal, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountAgentCommission, totals.ListingAmount, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountHSTInputTaxCredit, totals.ListingTax, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountFeeDeductedIncome, agent.FeesDeducted.Decimal, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountHSTInputTaxCredit, agent.TaxOnFeesDeducted(), desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountCommissionIncome, totals.ListingAmount.Add(totals.SellingAmount), desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountHSTCollected, totals.ListingTax.Add(totals.SellingTax), desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountDepositLiability, deposit, desc), domain.DateBasisFinalized, "")

	if deposit.GreaterThanOrEqual(total) {
		set.add(domain.NewCreditLine(domain.AccountDepositLiability, deposit.Sub(total), desc), domain.DateBasisFinalized, "")
	} else {
		set.add(domain.NewDebitLine(domain.AccountReceivableCommission, total.Sub(deposit), desc), domain.DateBasisFinalized, "")
	}

	set.add(domain.NewCreditLine(domain.AccountOutsideBrokerPayable, totals.SellingAmount.Add(totals.SellingTax), desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountOutsideBrokerCommission, totals.SellingAmount, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountHSTInputTaxCredit, totals.SellingTax, desc), domain.DateBasisFinalized, "")

	b.addRebate(set, trade)

	if total.GreaterThan(deposit) {
		shortfall := total.Sub(deposit)
		payer, eft := "", ""
		if payment != nil {
			payer, eft = payment.ReceivedFrom, payment.EFTNumber
		}
		receiptDesc := fmt.Sprintf("%s - Received From: %s", desc, payer)
		set.add(domain.NewDebitLine(domain.AccountCashCommissionTrust, shortfall, receiptDesc), domain.DateBasisClosing, eft)
		set.add(domain.NewCreditLine(domain.AccountReceivableCommission, shortfall, receiptDesc), domain.DateBasisClosing, eft)
	}
}

func (b *LedgerBuilder) buildNotHeld(set *lineSet, trade *domain.Trade, side string, payment *domain.PaymentReceipt) {
	desc := trade.CommissionDescription()
	agent := trade.PrimaryAgent()

	commission := trade.SellingRow().SellingAmount.Decimal
	if strings.EqualFold(strings.TrimSpace(side), domain.EndListingSide) {
		commission = trade.ListingRow().ListingAmount.Decimal
	}
	tax := domain.RoundMoney(commission.Mul(b.hstRate))

	set.add(domain.NewCreditLine(domain.AccountCommissionIncome, commission, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountHSTInputTaxCredit, tax, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountHSTCollected, tax, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewDebitLine(domain.AccountAgentCommission, agent.Amount.Decimal, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountCommissionPayable, agent.NetCommission.Decimal, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountFeeDeductedIncome, agent.FeesDeducted.Decimal, desc), domain.DateBasisFinalized, "")
	set.add(domain.NewCreditLine(domain.AccountHSTInputTaxCredit, agent.TaxOnFeesDeducted(), desc), domain.DateBasisFinalized, "")

	b.addRebate(set, trade)

	if payment == nil || !payment.Amount.IsPositive() {
		return
	}
	receiptDesc := fmt.Sprintf("%s - Received From: %s", trade.TradeRef(), payment.ReceivedFrom)
	set.add(domain.NewDebitLine(domain.AccountReceivableCommission, payment.Amount, desc), domain.DateBasisFinalized, payment.EFTNumber)
	set.add(domain.NewDebitLine(domain.AccountCashCommissionTrust, payment.Amount, receiptDesc), domain.DateBasisClosing, payment.EFTNumber)
	set.add(domain.NewCreditLine(domain.AccountReceivableCommission, payment.Amount, receiptDesc), domain.DateBasisClosing, payment.EFTNumber)
}

func (b *LedgerBuilder) addRebate(set *lineSet, trade *domain.Trade) {
	rebate := trade.TotalBuyerRebate()
	if !rebate.IsPositive() {
		return
	}
	set.add(domain.NewCreditLine(domain.AccountReferralFees, rebate, trade.TradeRef()+" - Buyer Rebate"), domain.DateBasisFinalized, "")
}
