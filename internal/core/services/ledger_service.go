package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/google/uuid"
)

const defaultLedgerPageSize = 50

type ledgerService struct {
	BaseService
	repo   portsrepo.LedgerRepositoryFacade
	remote gateways.AccountingLedger
	clock  func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithAccountingLedger pushes posted entries to a remote accounting API.
func WithAccountingLedger(remote gateways.AccountingLedger) LedgerServiceOption {
	return func(s *ledgerService) {
		s.remote = remote
	}
}

// WithLedgerClock overrides the clock used for sync timestamps.
func WithLedgerClock(clock func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// NewLedgerService creates a ledger service backed by repo.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{repo: repo, clock: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) remoteEnabled() bool {
	return s.remote != nil && s.remote.Enabled()
}

// NewEntryStatus is the status new entries are stored with: PENDING while a remote ledger still has to accept them.
func NewEntryStatus(remote gateways.AccountingLedger) domain.EntryStatus {
	if remote != nil && remote.Enabled() {
		return domain.EntryStatusPending
	}
	return domain.EntryStatusPosted
}

func (s *ledgerService) PostEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	code := domain.AccountCode(strings.TrimSpace(req.AccountNumber))
	name := strings.TrimSpace(req.AccountName)
	if name == "" {
		if !code.Known() {
			return nil, fmt.Errorf("%w: unknown account %q", apperrors.ErrValidation, code)
		}
		name = code.Name()
	}
	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return nil, fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrValidation)
	}
	if req.Debit.IsPositive() == req.Credit.IsPositive() {
		return nil, fmt.Errorf("%w: exactly one of debit or credit must be set", apperrors.ErrValidation)
	}
	entryDate, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", apperrors.ErrValidation, err)
	}
	var chequeDate *time.Time
	if strings.TrimSpace(req.ChequeDate) != "" {
		d, err := domain.ParseDate(req.ChequeDate)
		if err != nil {
			return nil, fmt.Errorf("%w: chequeDate: %v", apperrors.ErrValidation, err)
		}
		chequeDate = &d
	}

	now := s.clock()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		TradeNumber: strings.TrimSpace(req.TradeNumber),
		Position:    1,
		AccountCode: code,
		AccountName: name,
		Debit:       domain.RoundMoney(req.Debit),
		Credit:      domain.RoundMoney(req.Credit),
		Description: req.Description,
		EntryDate:   entryDate,
		ChequeDate:  chequeDate,
		Status:      NewEntryStatus(s.remote),
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if req.EFTNumber != "" {
		entry.EFTNumber = domain.NormalizeEFTNumber(req.EFTNumber)
	}

	if err := s.repo.SaveEntries(ctx, []domain.LedgerEntry{entry}); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("account", string(code)))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	if entry.Status == domain.EntryStatusPending {
		posted, err := s.push(ctx, []domain.LedgerEntry{entry})
		if err != nil {
			return nil, err
		}
		if posted == 1 {
			entry.Status = domain.EntryStatusPosted
		}
	}
	return &entry, nil
}

func (s *ledgerService) PostEntries(ctx context.Context, entries []domain.LedgerEntry) (bool, error) {
	if !s.remoteEnabled() {
		return false, nil
	}
	pending := 0
	for _, e := range entries {
		if e.Status != domain.EntryStatusPosted {
			pending++
		}
	}
	posted, err := s.push(ctx, entries)
	if err != nil {
		return false, err
	}
	return posted == pending, nil
}

func (s *ledgerService) SyncPendingEntries(ctx context.Context, limit int) (int, error) {
	if !s.remoteEnabled() {
		return 0, nil
	}
	entries, err := s.repo.FindPendingEntries(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pending ledger entries")
		return 0, fmt.Errorf("failed to load pending entries: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	posted, err := s.push(ctx, entries)
	if err != nil {
		return posted, err
	}
	s.LogInfo(ctx, "Ledger sync run finished", slog.Int("pending", len(entries)), slog.Int("posted", posted))
	return posted, nil
}

// push posts entries in order and stops at the first remote failure; the rest stay PENDING.
func (s *ledgerService) push(ctx context.Context, entries []domain.LedgerEntry) (int, error) {
	var posted, failed []string
	var syncErr error
	for _, e := range entries {
		if e.Status == domain.EntryStatusPosted {
			continue
		}
		if syncErr != nil {
			failed = append(failed, e.EntryID)
			continue
		}
		if err := s.remote.PostLine(ctx, e.LineOf()); err != nil {
			syncErr = err
			failed = append(failed, e.EntryID)
			s.LogError(ctx, err, "Remote ledger rejected entry", slog.String("entry_id", e.EntryID), slog.String("trade_number", e.TradeNumber))
			continue
		}
		posted = append(posted, e.EntryID)
	}

	now := s.clock()
	if len(posted) > 0 {
		if err := s.repo.MarkEntriesPosted(ctx, posted, now); err != nil {
			s.LogError(ctx, err, "Failed to mark entries posted", slog.Int("count", len(posted)))
			return 0, fmt.Errorf("failed to mark entries posted: %w", err)
		}
	}
	if len(failed) > 0 {
		if err := s.repo.RecordSyncFailure(ctx, failed, syncErr.Error(), now); err != nil {
			s.LogError(ctx, err, "Failed to record sync failure", slog.Int("count", len(failed)))
			return len(posted), fmt.Errorf("failed to record sync failure: %w", err)
		}
		s.LogWarn(ctx, "Ledger entries left pending", slog.Int("count", len(failed)))
	}
	return len(posted), nil
}

func (s *ledgerService) ListEntriesByTrade(ctx context.Context, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, *string, error) {
	if strings.TrimSpace(params.TradeNumber) == "" {
		return nil, nil, fmt.Errorf("%w: trade number is required", apperrors.ErrValidation)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}
	entries, next, err := s.repo.ListEntriesByTrade(ctx, params.TradeNumber, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("trade_number", params.TradeNumber))
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, next, nil
}
