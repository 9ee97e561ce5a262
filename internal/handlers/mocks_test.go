package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TradeService ---
type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) GetTrade(ctx context.Context, tradeNumber string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) UpsertTrade(ctx context.Context, tradeNumber string, trade domain.Trade, userID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeNumber, trade, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) RecordTrustEFT(ctx context.Context, tradeNumber string, eft domain.TrustEFT, userID string) (*domain.TrustEFT, error) {
	args := m.Called(ctx, tradeNumber, eft, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustEFT), args.Error(1)
}

func (m *MockTradeService) ListTrustEFTs(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error) {
	args := m.Called(ctx, tradeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrustEFT), args.Error(1)
}

var _ portssvc.TradeSvcFacade = (*MockTradeService)(nil)

// --- Mock FinalizationService ---
type MockFinalizationService struct {
	mock.Mock
}

func (m *MockFinalizationService) Preview(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizationResult), args.Error(1)
}

func (m *MockFinalizationService) SuggestPayment(ctx context.Context, tradeNumber string) (*domain.PaymentSuggestion, error) {
	args := m.Called(ctx, tradeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSuggestion), args.Error(1)
}

func (m *MockFinalizationService) Finalize(ctx context.Context, cmd domain.FinalizeCommand) (*domain.FinalizationResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizationResult), args.Error(1)
}

var _ portssvc.FinalizationSvcFacade = (*MockFinalizationService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListEntriesByTrade(ctx context.Context, params dto.ListLedgerEntriesParams) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}

func (m *MockLedgerService) PostEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) PostEntries(ctx context.Context, entries []domain.LedgerEntry) (bool, error) {
	args := m.Called(ctx, entries)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) SyncPendingEntries(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TransactionDetails(ctx context.Context, tradeNumber string) (*domain.TransactionDetails, error) {
	args := m.Called(ctx, tradeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionDetails), args.Error(1)
}

// --- Mock CommissionService ---
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) ListFeePlans(ctx context.Context) []domain.FeePlan {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FeePlan)
}

func (m *MockCommissionService) CalculateAgentCommission(ctx context.Context, req dto.CalculateCommissionRequest) (*domain.AgentCommissionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentCommissionResult), args.Error(1)
}

// --- Mock EFTService ---
type MockEFTService struct {
	mock.Mock
}

func (m *MockEFTService) NextEFTNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
