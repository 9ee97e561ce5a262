package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const (
	sectionDetails         = "Transaction Details"
	sectionTrustDeposits   = "Trust Deposits"
	sectionCommissionTrust = "Commission Trust Payments"
	sectionRealEstateTrust = "Real Estate Trust Payments"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	tradeRepo  portsrepo.TradeReader
	ledgerRepo portsrepo.LedgerEntryReader
	eftRepo    portsrepo.TrustEFTRepository
	preview    portssvc.FinalizationPreviewSvc
	clock      func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock used for GeneratedAt and date fallbacks.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.clock = clock
	}
}

// NewReportingService creates a reporting service. preview supplies the lines of trades not yet finalized.
func NewReportingService(
	tradeRepo portsrepo.TradeReader,
	ledgerRepo portsrepo.LedgerEntryReader,
	eftRepo portsrepo.TrustEFTRepository,
	preview portssvc.FinalizationPreviewSvc,
	options ...ReportingServiceOption,
) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		tradeRepo:  tradeRepo,
		ledgerRepo: ledgerRepo,
		eftRepo:    eftRepo,
		preview:    preview,
		clock:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TransactionDetails(ctx context.Context, tradeNumber string) (*domain.TransactionDetails, error) {
	trade, err := s.tradeRepo.FindTradeByNumber(ctx, tradeNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("trade %s: %w", tradeNumber, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get trade for report", slog.String("trade_number", tradeNumber))
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	var (
		entries []domain.LedgerEntry
		efts    []domain.TrustEFT
		preview *domain.FinalizationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.ledgerRepo.FindEntriesByTradeRef(gctx, tradeNumber)
		if err != nil {
			return fmt.Errorf("failed to load ledger entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		efts, err = s.eftRepo.ListTrustEFTsByTrade(gctx, tradeNumber)
		if err != nil {
			return fmt.Errorf("failed to load trust EFTs: %w", err)
		}
		return nil
	})
	if !trade.IsFinalized {
		g.Go(func() error {
			var err error
			preview, err = s.preview.Preview(gctx, domain.FinalizeCommand{TradeNumber: tradeNumber})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to assemble transaction details", slog.String("trade_number", tradeNumber))
		return nil, err
	}

	eftEntries, err := s.entriesByEFT(ctx, efts)
	if err != nil {
		s.LogError(ctx, err, "Failed to load EFT ledger entries", slog.String("trade_number", tradeNumber))
		return nil, err
	}

	fallback := domain.DateOnly(s.clock())
	if trade.FinalizedDate != nil {
		fallback = *trade.FinalizedDate
	}

	details := &domain.TransactionDetails{
		TradeNumber:   trade.TradeNumber,
		Address:       trade.Address(),
		IsFinalized:   trade.IsFinalized,
		FinalizedDate: trade.FinalizedDate,
		GeneratedAt:   s.clock(),
	}
	if trade.IsFinalized {
		details.Details = domain.NewReportSection(sectionDetails, detailRows(tradeNumber, entries))
	} else {
		rows := make([]domain.ReportRow, 0, len(preview.Lines))
		for _, l := range preview.Lines {
			rows = append(rows, domain.ReportRowFromLine(l))
		}
		details.Details = domain.NewReportSection(sectionDetails, rows)
	}
	details.TrustDeposits = domain.NewReportSection(sectionTrustDeposits, trustDepositRows(tradeNumber, entries, fallback))
	details.CommissionTrust = domain.NewReportSection(sectionCommissionTrust, commissionTrustRows(efts, eftEntries, fallback))
	details.RealEstateTrust = domain.NewReportSection(sectionRealEstateTrust, realEstateTrustRows(tradeNumber, efts, eftEntries, fallback))
	return details, nil
}

// entriesByEFT loads the ledger entries of every EFT concurrently, indexed like efts.
func (s *reportingService) entriesByEFT(ctx context.Context, efts []domain.TrustEFT) ([][]domain.LedgerEntry, error) {
	out := make([][]domain.LedgerEntry, len(efts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, eft := range efts {
		if eft.IsCommissionTransfer() || eft.EFTNumber == "" {
			continue
		}
		g.Go(func() error {
			entries, err := s.ledgerRepo.FindEntriesByEFTNumber(gctx, eft.EFTNumber)
			if err != nil {
				return fmt.Errorf("failed to load entries for %s: %w", eft.EFTNumber, err)
			}
			out[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// mentionsTrade reports whether desc references exactly this trade number,
// so "Trade #: 104" does not match "Trade #: 1042".
func mentionsTrade(desc, tradeNumber string) bool {
	ref := domain.TradeRef(tradeNumber)
	for {
		i := strings.Index(desc, ref)
		if i < 0 {
			return false
		}
		rest := desc[i+len(ref):]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return true
		}
		desc = rest
	}
}

func rowFromEntry(e domain.LedgerEntry, date time.Time, eftNumber string) domain.ReportRow {
	return domain.ReportRow{
		Date:        date,
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Description: e.Description,
		EFTNumber:   eftNumber,
	}
}

func firstDate(candidates ...*time.Time) time.Time {
	for _, d := range candidates {
		if d != nil && !d.IsZero() {
			return *d
		}
	}
	return time.Time{}
}

// detailRows keeps the trade's own postings, leaving out trust payments and deposit receipts.
func detailRows(tradeNumber string, entries []domain.LedgerEntry) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(entries))
	for _, e := range entries {
		if !mentionsTrade(e.Description, tradeNumber) ||
			strings.Contains(e.Description, "Paid to:") ||
			strings.Contains(e.Description, "Received from:") {
			continue
		}
		rows = append(rows, rowFromEntry(e, e.EntryDate, e.EFTNumber))
	}
	return rows
}

func trustDepositRows(tradeNumber string, entries []domain.LedgerEntry, fallback time.Time) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0)
	for _, e := range entries {
		if e.AccountCode != domain.AccountCashTrust && e.AccountCode != domain.AccountDepositLiability {
			continue
		}
		if !mentionsTrade(e.Description, tradeNumber) || !strings.Contains(e.Description, "Received from") {
			continue
		}
		rows = append(rows, rowFromEntry(e, firstDate(&e.EntryDate, &fallback), e.EFTNumber))
	}
	return rows
}

func commissionTrustRows(efts []domain.TrustEFT, eftEntries [][]domain.LedgerEntry, fallback time.Time) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0)
	for i, eft := range efts {
		if eft.Account != domain.TrustAccountCommission {
			continue
		}
		for _, e := range eftEntries[i] {
			date := firstDate(e.ChequeDate, &e.EntryDate, eft.Date, &fallback)
			rows = append(rows, rowFromEntry(e, date, eft.EFTNumber))
		}
	}
	return rows
}

func realEstateTrustRows(tradeNumber string, efts []domain.TrustEFT, eftEntries [][]domain.LedgerEntry, fallback time.Time) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0)
	for i, eft := range efts {
		if eft.Account != domain.TrustAccountRealEstate {
			continue
		}
		eftDate := firstDate(eft.Date, &fallback)
		if eft.IsCommissionTransfer() {
			desc := "Commission Transfer for " + domain.TradeRef(tradeNumber)
			debit := domain.NewDebitLine(domain.AccountCashCommissionTrust, eft.Amount, desc)
			credit := domain.NewCreditLine(domain.AccountCashTrust, eft.Amount, desc)
			for _, l := range []domain.LedgerLine{debit, credit} {
				l.Date = eftDate
				l.EFTNumber = eft.EFTNumber
				rows = append(rows, domain.ReportRowFromLine(l))
			}
			continue
		}
		for _, e := range eftEntries[i] {
			if !mentionsTrade(e.Description, tradeNumber) {
				continue
			}
			rows = append(rows, rowFromEntry(e, firstDate(e.ChequeDate, &e.EntryDate, &eftDate), eft.EFTNumber))
		}
	}
	return rows
}
