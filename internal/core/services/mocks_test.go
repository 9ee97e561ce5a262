package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TradeRepository ---
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) FindTradeByNumber(ctx context.Context, tradeNumber string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeNumber)
	var trade *domain.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*domain.Trade)
	}
	return trade, args.Error(1)
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) SaveFinalization(ctx context.Context, trade domain.Trade, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, trade, entries)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListEntriesByTrade(ctx context.Context, tradeNumber string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, tradeNumber, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockLedgerRepository) FindEntriesByTradeRef(ctx context.Context, tradeNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tradeNumber)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByEFTNumber(ctx context.Context, eftNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, eftNumber)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) FindPendingEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ListEFTReferences(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var refs []string
	if args.Get(0) != nil {
		refs = args.Get(0).([]string)
	}
	return refs, args.Error(1)
}

func (m *MockLedgerRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkEntriesPosted(ctx context.Context, entryIDs []string, at time.Time) error {
	args := m.Called(ctx, entryIDs, at)
	return args.Error(0)
}

func (m *MockLedgerRepository) RecordSyncFailure(ctx context.Context, entryIDs []string, syncErr string, at time.Time) error {
	args := m.Called(ctx, entryIDs, syncErr, at)
	return args.Error(0)
}

// --- Mock EFTRepository ---
type MockEFTRepository struct {
	mock.Mock
}

func (m *MockEFTRepository) NextEFTSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEFTRepository) SaveTrustEFT(ctx context.Context, eft domain.TrustEFT) error {
	args := m.Called(ctx, eft)
	return args.Error(0)
}

func (m *MockEFTRepository) ListTrustEFTsByTrade(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error) {
	args := m.Called(ctx, tradeNumber)
	var efts []domain.TrustEFT
	if args.Get(0) != nil {
		efts = args.Get(0).([]domain.TrustEFT)
	}
	return efts, args.Error(1)
}

// --- Mock EFT service ---
type MockEFTService struct {
	mock.Mock
}

func (m *MockEFTService) NextEFTNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Mock AccountingLedger ---
type MockAccountingLedger struct {
	mock.Mock
	enabled bool
}

func (m *MockAccountingLedger) Enabled() bool {
	return m.enabled
}

func (m *MockAccountingLedger) PostLine(ctx context.Context, line domain.LedgerLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockAccountingLedger) FinalizeTrade(ctx context.Context, tradeNumber string, finalizedDate time.Time, fallenThru bool) error {
	args := m.Called(ctx, tradeNumber, finalizedDate, fallenThru)
	return args.Error(0)
}

// --- Mock EventTracker ---
type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
