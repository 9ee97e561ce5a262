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
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

const eventTradeFinalized = "trade_finalized"

type finalizationService struct {
	BaseService
	tradeRepo portsrepo.TradeRepositoryFacade
	ledger    portssvc.LedgerWriterSvc
	eft       portssvc.EFTSvcFacade
	builder   *LedgerBuilder
	remote    gateways.AccountingLedger
	tracker   gateways.EventTracker
	clock     func() time.Time
	loc       *time.Location
}

// FinalizationServiceOption is a functional option for configuring the finalization service
type FinalizationServiceOption func(*finalizationService)

// WithRemoteLedger marks trades finalized on the remote accounting API after their lines are pushed.
func WithRemoteLedger(remote gateways.AccountingLedger) FinalizationServiceOption {
	return func(s *finalizationService) {
		s.remote = remote
	}
}

// WithEventTracker records a product analytics event per finalization.
func WithEventTracker(tracker gateways.EventTracker) FinalizationServiceOption {
	return func(s *finalizationService) {
		s.tracker = tracker
	}
}

// WithFinalizationClock overrides the clock used for audit timestamps and date defaults.
func WithFinalizationClock(clock func() time.Time) FinalizationServiceOption {
	return func(s *finalizationService) {
		s.clock = clock
	}
}

// WithFinalizationLocation sets the zone whose calendar day a missing finalized date defaults to.
func WithFinalizationLocation(loc *time.Location) FinalizationServiceOption {
	return func(s *finalizationService) {
		s.loc = loc
	}
}

// NewFinalizationService creates the finalize workflow.
func NewFinalizationService(
	tradeRepo portsrepo.TradeRepositoryFacade,
	ledger portssvc.LedgerWriterSvc,
	eft portssvc.EFTSvcFacade,
	builder *LedgerBuilder,
	options ...FinalizationServiceOption,
) portssvc.FinalizationSvcFacade {
	svc := &finalizationService{
		tradeRepo: tradeRepo,
		ledger:    ledger,
		eft:       eft,
		builder:   builder,
		clock:     time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FinalizationSvcFacade = (*finalizationService)(nil)

// PaymentSuggestionFor works out whether finalizing trade needs a payment receipt and what it should default to.
func PaymentSuggestionFor(trade *domain.Trade) domain.PaymentSuggestion {
	totals := trade.Totals()
	total := totals.Total()
	deposit := trade.Deposit()

	s := domain.PaymentSuggestion{
		TradeNumber:     trade.TradeNumber,
		WeHold:          trade.WeHold(),
		Deposit:         deposit,
		TotalCommission: total,
	}
	switch {
	case !s.WeHold:
		s.Required = true
		s.RequiresEFT = true
		s.ReceivedFrom = trade.ListingBrokerCompany()
		s.Amount = domain.RoundMoney(totals.SellingAmount.Add(totals.SellingTax))
	case total.GreaterThan(deposit):
		// the payer is left for the user to fill in
		s.Required = true
		s.RequiresEFT = true
		s.Amount = domain.RoundMoney(total.Sub(deposit))
	}
	return s
}

func (s *finalizationService) getTrade(ctx context.Context, tradeNumber string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindTradeByNumber(ctx, tradeNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("trade %s: %w", tradeNumber, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get trade", slog.String("trade_number", tradeNumber))
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

func (s *finalizationService) SuggestPayment(ctx context.Context, tradeNumber string) (*domain.PaymentSuggestion, error) {
	trade, err := s.getTrade(ctx, tradeNumber)
	if err != nil {
		return nil, err
	}
	suggestion := PaymentSuggestionFor(trade)
	return &suggestion, nil
}

// ledgerParams maps a command onto builder input. Payment fields the caller left
// blank take their suggested values.
func (s *finalizationService) ledgerParams(trade *domain.Trade, cmd domain.FinalizeCommand) (domain.LedgerParams, domain.PaymentSuggestion) {
	params := domain.LedgerParams{Side: cmd.Side}
	if cmd.FinalizedDate != nil {
		params.FinalizedDate = domain.DateOnly(*cmd.FinalizedDate)
	} else {
		params.FinalizedDate = localDay(s.clock(), s.loc)
	}
	if cmd.ClosingDate != nil {
		params.ClosingDate = domain.DateOnly(*cmd.ClosingDate)
	}

	suggestion := PaymentSuggestionFor(trade)
	if suggestion.Required {
		payment := &domain.PaymentReceipt{
			ReceivedFrom: strings.TrimSpace(cmd.ReceivedFrom),
			Amount:       suggestion.Amount,
		}
		if payment.ReceivedFrom == "" {
			payment.ReceivedFrom = suggestion.ReceivedFrom
		}
		if cmd.PaymentAmount != nil {
			payment.Amount = domain.RoundMoney(*cmd.PaymentAmount)
		}
		if strings.TrimSpace(cmd.EFTNumber) != "" {
			payment.EFTNumber = domain.NormalizeEFTNumber(cmd.EFTNumber)
		}
		params.Payment = payment
	}
	return params, suggestion
}

func (s *finalizationService) Preview(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error) {
	trade, err := s.getTrade(ctx, cmd.TradeNumber)
	if err != nil {
		return nil, err
	}

	params, _ := s.ledgerParams(trade, cmd)
	result := &domain.FinalizationResult{
		TradeNumber:   trade.TradeNumber,
		FinalizedDate: params.FinalizedDate,
		FallenThru:    cmd.FallenThru,
		Lines:         []domain.LedgerLine{},
		Entries:       []domain.LedgerEntry{},
	}
	if params.Payment != nil {
		result.EFTNumber = params.Payment.EFTNumber
	}
	if !cmd.FallenThru {
		result.Lines = s.builder.Build(trade, params)
	}
	result.Summary = domain.Summarize(result.Lines)
	return result, nil
}

func (s *finalizationService) Finalize(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error) {
	trade, err := s.getTrade(ctx, cmd.TradeNumber)
	if err != nil {
		return nil, err
	}
	if trade.IsFinalized {
		return nil, fmt.Errorf("trade %s is already finalized: %w", trade.TradeNumber, apperrors.ErrConflict)
	}
	if cmd.FinalizedDate == nil {
		return nil, fmt.Errorf("%w: finalized date is required", apperrors.ErrValidation)
	}

	if trade.WeHold() && cmd.ClosingDate == nil {
		if _, ok := trade.ClosingDate(); !ok {
			return nil, fmt.Errorf("%w: closing date is required when the brokerage holds the deposit", apperrors.ErrValidation)
		}
	}

	now := s.clock()
	finalizedDate := domain.DateOnly(*cmd.FinalizedDate)
	trade.IsFinalized = true
	trade.FinalizedDate = &finalizedDate
	trade.FallenThru = cmd.FallenThru
	trade.LastUpdatedAt = now
	trade.LastUpdatedBy = cmd.UserID

	if cmd.FallenThru {
		if err := s.tradeRepo.SaveFinalization(ctx, *trade, nil); err != nil {
			s.LogError(ctx, err, "Failed to save fallen-thru trade", slog.String("trade_number", trade.TradeNumber))
			return nil, fmt.Errorf("failed to finalize trade: %w", err)
		}
		s.LogInfo(ctx, "Trade marked fallen thru", slog.String("trade_number", trade.TradeNumber))
		s.track(cmd, trade, 0)
		return &domain.FinalizationResult{
			TradeNumber:   trade.TradeNumber,
			FinalizedDate: finalizedDate,
			FallenThru:    true,
			Lines:         []domain.LedgerLine{},
			Entries:       []domain.LedgerEntry{},
			Summary:       domain.Summarize(nil),
			Synced:        s.sync(ctx, trade, nil),
		}, nil
	}

	params, suggestion := s.ledgerParams(trade, cmd)
	if suggestion.Required {
		if params.Payment.ReceivedFrom == "" {
			return nil, fmt.Errorf("%w: received from is required", apperrors.ErrValidation)
		}
		if !params.Payment.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
		}
		if suggestion.RequiresEFT && params.Payment.EFTNumber == "" {
			number, err := s.eft.NextEFTNumber(ctx)
			if err != nil {
				return nil, err
			}
			params.Payment.EFTNumber = number
			s.LogInfo(ctx, "Allocated EFT number for payment receipt", slog.String("trade_number", trade.TradeNumber), slog.String("eft_number", number))
		}
	}

	lines := s.builder.Build(trade, params)
	summary := domain.Summarize(lines)
	if !summary.Balanced {
		s.LogWarn(ctx, "Finalization journal does not balance",
			slog.String("trade_number", trade.TradeNumber),
			slog.String("total_debit", summary.TotalDebit.String()),
			slog.String("total_credit", summary.TotalCredit.String()))
	}

	entries := s.entriesFor(trade.TradeNumber, lines, cmd.UserID, now)
	if err := s.tradeRepo.SaveFinalization(ctx, *trade, entries); err != nil {
		s.LogError(ctx, err, "Failed to save finalization", slog.String("trade_number", trade.TradeNumber))
		return nil, fmt.Errorf("failed to finalize trade: %w", err)
	}

	result := &domain.FinalizationResult{
		TradeNumber:   trade.TradeNumber,
		FinalizedDate: finalizedDate,
		Lines:         lines,
		Entries:       entries,
		Summary:       summary,
	}
	if params.Payment != nil {
		result.EFTNumber = params.Payment.EFTNumber
	}
	result.Synced = s.sync(ctx, trade, entries)
	if result.Synced {
		for i := range result.Entries {
			result.Entries[i].Status = domain.EntryStatusPosted
		}
	}

	s.LogInfo(ctx, "Trade finalized", slog.String("trade_number", trade.TradeNumber), slog.Int("entries", len(entries)), slog.Bool("synced", result.Synced))
	s.track(cmd, trade, len(entries))
	return result, nil
}

// entriesFor turns the non-zero lines into ledger entries.
func (s *finalizationService) entriesFor(tradeNumber string, lines []domain.LedgerLine, userID string, now time.Time) []domain.LedgerEntry {
	status := NewEntryStatus(s.remote)
	entries := make([]domain.LedgerEntry, 0, len(lines))
	for _, l := range lines {
		if l.IsZero() {
			continue
		}
		e := domain.LedgerEntry{
			EntryID:     uuid.NewString(),
			TradeNumber: tradeNumber,
			Position:    l.Position,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			EntryDate:   l.Date,
			ChequeDate:  l.ChequeDate,
			EFTNumber:   l.EFTNumber,
			Status:      status,
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
		}
		entries = append(entries, e)
	}
	return entries
}

// sync pushes the persisted entries and the finalized flag to the remote ledger.
// Failures are logged; the retry job picks up what is still pending.
func (s *finalizationService) sync(ctx context.Context, trade *domain.Trade, entries []domain.LedgerEntry) bool {
	if s.remote == nil || !s.remote.Enabled() {
		return false
	}
	if len(entries) > 0 {
		ok, err := s.ledger.PostEntries(ctx, entries)
		if err != nil {
			s.LogError(ctx, err, "Failed to push finalization entries", slog.String("trade_number", trade.TradeNumber))
			return false
		}
		if !ok {
			return false
		}
	}
	if err := s.remote.FinalizeTrade(ctx, trade.TradeNumber, *trade.FinalizedDate, trade.FallenThru); err != nil {
		s.LogError(ctx, err, "Failed to finalize trade on remote ledger", slog.String("trade_number", trade.TradeNumber))
		return false
	}
	return true
}

func (s *finalizationService) track(cmd domain.FinalizeCommand, trade *domain.Trade, entries int) {
	if s.tracker == nil {
		return
	}
	s.tracker.Enqueue(cmd.UserID, eventTradeFinalized, map[string]any{
		"trade_number": trade.TradeNumber,
		"we_hold":      trade.WeHold(),
		"fallen_thru":  trade.FallenThru,
		"entries":      entries,
	})
}
