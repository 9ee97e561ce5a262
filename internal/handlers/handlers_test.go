package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/dto"
	"github.com/SscSPs/brokerage_trade_ledger/internal/handlers"
	"github.com/SscSPs/brokerage_trade_ledger/internal/platform/config"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "handler-test-secret"
	testUserID    = "user-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	token        string
	trade        *MockTradeService
	finalization *MockFinalizationService
	ledger       *MockLedgerService
	reporting    *MockReportingService
	commission   *MockCommissionService
	eft          *MockEFTService
	user         *MockUserService
	tokens       *MockTokenService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())

	token, err := utils.GenerateJWT(testUserID, testJWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.trade = new(MockTradeService)
	suite.finalization = new(MockFinalizationService)
	suite.ledger = new(MockLedgerService)
	suite.reporting = new(MockReportingService)
	suite.commission = new(MockCommissionService)
	suite.eft = new(MockEFTService)
	suite.user = new(MockUserService)
	suite.tokens = new(MockTokenService)

	container := &portssvc.ServiceContainer{
		Commission:   suite.commission,
		Trade:        suite.trade,
		Finalization: suite.finalization,
		EFT:          suite.eft,
		Ledger:       suite.ledger,
		Reporting:    suite.reporting,
		User:         suite.user,
		TokenService: suite.tokens,
	}
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.trade.AssertExpectations(suite.T())
	suite.finalization.AssertExpectations(suite.T())
	suite.ledger.AssertExpectations(suite.T())
	suite.reporting.AssertExpectations(suite.T())
	suite.commission.AssertExpectations(suite.T())
	suite.eft.AssertExpectations(suite.T())
	suite.user.AssertExpectations(suite.T())
	suite.tokens.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sampleTrade() *domain.Trade {
	return &domain.Trade{
		TradeNumber:  "1042",
		KeyInfo:      domain.KeyInfo{StreetNumber: "12", StreetName: "Maple Ave", CloseDate: "2025-03-31"},
		TrustRecords: []domain.TrustRecord{{Amount: domain.NewAmount(decimal.NewFromInt(20000)), WeHold: domain.WeHoldYes}},
	}
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestRequiresAuth() {
	w := suite.do(http.MethodGet, "/api/v1/trades/1042", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGetTrade() {
	suite.trade.On("GetTrade", mock.Anything, "1042").Return(sampleTrade(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/trades/1042", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	suite.decode(w, &resp)
	suite.Equal("12 Maple Ave", resp["address"])
	suite.Equal(true, resp["weHold"])
	suite.Equal("20000.00", resp["deposit"])
}

func (suite *HandlerTestSuite) TestGetTrade_NotFound() {
	suite.trade.On("GetTrade", mock.Anything, "9").Return(nil, fmt.Errorf("trade 9: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/trades/9", nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "trade 9")
}

func (suite *HandlerTestSuite) TestUpsertTrade() {
	saved := sampleTrade()
	suite.trade.On("UpsertTrade", mock.Anything, "1042", mock.MatchedBy(func(t domain.Trade) bool {
		return t.KeyInfo.StreetName == "Maple Ave"
	}), testUserID).Return(saved, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/trades/1042", sampleTrade(), true)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestUpsertTrade_Finalized() {
	suite.trade.On("UpsertTrade", mock.Anything, "1042", mock.Anything, testUserID).
		Return(nil, fmt.Errorf("trade 1042 is finalized: %w", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPut, "/api/v1/trades/1042", sampleTrade(), true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestFinalize() {
	finalized := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	suite.finalization.On("Finalize", mock.Anything, mock.MatchedBy(func(cmd domain.FinalizeCommand) bool {
		return cmd.TradeNumber == "1042" &&
			cmd.UserID == testUserID &&
			cmd.FinalizedDate != nil && cmd.FinalizedDate.Equal(finalized) &&
			cmd.ReceivedFrom == "Smith Law" &&
			cmd.PaymentAmount != nil && cmd.PaymentAmount.Equal(decimal.NewFromInt(5300))
	})).Return(&domain.FinalizationResult{
		TradeNumber:   "1042",
		FinalizedDate: finalized,
		Lines: []domain.LedgerLine{
			domain.NewCreditLine(domain.AccountCommissionIncome, decimal.NewFromInt(22000), "Trade #: 1042 - 12 Maple Ave"),
		},
		Synced: true,
	}, nil).Once()

	body := `{"finalizedDate":"2025-04-02","receivedFrom":"Smith Law","paymentAmount":"5300"}`
	w := suite.do(http.MethodPost, "/api/v1/trades/1042/finalize", body, true)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.FinalizationResponse
	suite.decode(w, &resp)
	suite.Equal("2025-04-02", resp.FinalizedDate)
	suite.True(resp.Synced)
	suite.Require().Len(resp.Lines, 1)
	suite.Equal(string(domain.AccountCommissionIncome), resp.Lines[0].AccountNumber)
}

func (suite *HandlerTestSuite) TestFinalize_Errors() {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"bad date", `{"finalizedDate":"04/02/2025"}`, nil, http.StatusBadRequest},
		{"negative payment", `{"finalizedDate":"2025-04-02","paymentAmount":"-1"}`, nil, http.StatusBadRequest},
		{"unknown side", `{"finalizedDate":"2025-04-02","side":"Both Sides"}`, nil, http.StatusBadRequest},
		{"already finalized", `{"finalizedDate":"2025-04-02"}`, apperrors.ErrConflict, http.StatusConflict},
		{"missing payer", `{"finalizedDate":"2025-04-02"}`, fmt.Errorf("%w: received from is required", apperrors.ErrValidation), http.StatusBadRequest},
		{"remote ledger down", `{"finalizedDate":"2025-04-02"}`, fmt.Errorf("post line: %w", apperrors.ErrUpstream), http.StatusBadGateway},
		{"database down", `{"finalizedDate":"2025-04-02"}`, errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			if tt.err != nil {
				suite.finalization.On("Finalize", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			w := suite.do(http.MethodPost, "/api/v1/trades/1042/finalize", tt.body, true)

			suite.Equal(tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "connection refused")
			}
			suite.finalization.AssertExpectations(suite.T())
		})
	}
}

func (suite *HandlerTestSuite) TestPreview_WithoutBody() {
	suite.finalization.On("Preview", mock.Anything, domain.FinalizeCommand{TradeNumber: "1042", UserID: testUserID}).
		Return(&domain.FinalizationResult{TradeNumber: "1042", Lines: []domain.LedgerLine{}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/trades/1042/finalization/preview", nil, true)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.FinalizationResponse
	suite.decode(w, &resp)
	suite.Empty(resp.Lines)
	suite.Empty(resp.FinalizedDate)
}

func (suite *HandlerTestSuite) TestPaymentSuggestion() {
	suite.finalization.On("SuggestPayment", mock.Anything, "1042").Return(&domain.PaymentSuggestion{
		TradeNumber: "1042",
		Required:    true,
		Amount:      decimal.NewFromInt(5300),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/trades/1042/payment-suggestion", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"required":true`)
}

func (suite *HandlerTestSuite) TestTrustEFTs() {
	eftDate := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	suite.trade.On("RecordTrustEFT", mock.Anything, "1042", mock.MatchedBy(func(e domain.TrustEFT) bool {
		return e.Account == domain.TrustAccountRealEstate && e.Date != nil && e.Date.Equal(eftDate) && e.Amount.Equal(decimal.NewFromInt(20000))
	}), testUserID).Return(&domain.TrustEFT{EFTID: "e1", TradeNumber: "1042", EFTNumber: "EFT302", Account: domain.TrustAccountRealEstate, Date: &eftDate}, nil).Once()
	suite.trade.On("ListTrustEFTs", mock.Anything, "1042").Return([]domain.TrustEFT{{EFTNumber: "EFT302"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/trades/1042/trust-efts",
		`{"account":"REAL_ESTATE_TRUST","type":"CommissionTransfer","amount":"20000","date":"2025-04-10"}`, true)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"eftNumber":"EFT302"`)
	suite.Contains(w.Body.String(), `"date":"2025-04-10"`)

	w = suite.do(http.MethodGet, "/api/v1/trades/1042/trust-efts", nil, true)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/trades/1042/trust-efts", `{"account":"PETTY_CASH","amount":"1"}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestNextEFTNumber() {
	suite.eft.On("NextEFTNumber", mock.Anything).Return("EFT305", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/eft/next-number", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"eftNumber":"EFT305"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLedgerRoutes() {
	next := "token-2"
	suite.ledger.On("ListEntriesByTrade", mock.Anything, dto.ListLedgerEntriesParams{TradeNumber: "1042", Limit: 10}).
		Return([]domain.LedgerEntry{{EntryID: "e1", AccountCode: domain.AccountCommissionIncome, EntryDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Status: domain.EntryStatusPosted}}, &next, nil).Once()
	suite.ledger.On("PostEntry", mock.Anything, mock.MatchedBy(func(r dto.CreateLedgerEntryRequest) bool {
		return r.AccountNumber == "10004" && r.Debit.Equal(decimal.NewFromInt(100))
	}), testUserID).Return(&domain.LedgerEntry{EntryID: "e2", AccountCode: "10004", Status: domain.EntryStatusPending}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger?tradeNumber=1042&limit=10", nil, true)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var page dto.ListLedgerEntriesResponse
	suite.decode(w, &page)
	suite.Len(page.Entries, 1)
	suite.Equal("2025-04-02", page.Entries[0].Date)
	suite.Equal(&next, page.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/ledger?limit=10", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/ledger",
		`{"accountNumber":"10004","debit":"100","description":"Trade #: 1042 - adjustment","date":"2025-04-02"}`, true)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"status":"PENDING"`)

	w = suite.do(http.MethodPost, "/api/v1/ledger", `{"accountNumber":"10004","description":"x"}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCommissionRoutes() {
	suite.commission.On("ListFeePlans", mock.Anything).Return([]domain.FeePlan{{Code: "plan500", Label: "Plan 500"}}).Once()
	suite.commission.On("CalculateAgentCommission", mock.Anything, mock.MatchedBy(func(r dto.CalculateCommissionRequest) bool {
		return r.FeePlan == "plan500"
	})).Return(&domain.AgentCommissionResult{FeePlan: domain.FeePlan{Code: "plan500"}, NetCommission: decimal.NewFromInt(10925)}, nil).Once()
	suite.commission.On("CalculateAgentCommission", mock.Anything, mock.MatchedBy(func(r dto.CalculateCommissionRequest) bool {
		return r.FeePlan == "plan42"
	})).Return(nil, fmt.Errorf("%w: unknown fee plan \"plan42\"", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/fee-plans", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"code":"plan500"`)

	w = suite.do(http.MethodPost, "/api/v1/commissions/calculate", `{"awardAmount":"10000","feePlan":"plan500"}`, true)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"netCommission":"10925"`)

	w = suite.do(http.MethodPost, "/api/v1/commissions/calculate", `{"awardAmount":"10000","feePlan":"plan42"}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "unknown fee plan")

	w = suite.do(http.MethodPost, "/api/v1/commissions/calculate", `{"percentage":"150","feePlan":"plan500"}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestTransactionDetails() {
	details := &domain.TransactionDetails{
		TradeNumber:     "1042",
		Address:         "12 Maple Ave",
		Details:         domain.NewReportSection("Transaction Details", nil),
		TrustDeposits:   domain.NewReportSection("Trust Deposits", nil),
		CommissionTrust: domain.NewReportSection("Commission Trust", nil),
		RealEstateTrust: domain.NewReportSection("Real Estate Trust", nil),
	}
	suite.reporting.On("TransactionDetails", mock.Anything, "1042").Return(details, nil).Twice()

	w := suite.do(http.MethodGet, "/api/v1/trades/1042/transaction-details", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"address":"12 Maple Ave"`)

	w = suite.do(http.MethodGet, "/api/v1/trades/1042/transaction-details?format=xlsx", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "trade-1042-transaction-details.xlsx")
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	w = suite.do(http.MethodGet, "/api/v1/trades/1042/transaction-details?format=pdf", nil, true)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogin() {
	user := &domain.User{UserID: testUserID, Username: "alice"}
	expires := time.Date(2025, 4, 2, 13, 0, 0, 0, time.UTC)
	suite.user.On("AuthenticateUser", mock.Anything, "alice", "correct-horse").Return(user, nil).Once()
	suite.user.On("AuthenticateUser", mock.Anything, "alice", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("jwt-token", expires, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"correct-horse"}`, false)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("jwt-token", resp.Token)
	suite.True(resp.ExpiresAt.Equal(expires))

	w = suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"wrong"}`, false)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"alice"}`, false)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRegister() {
	req := dto.CreateUserRequest{Username: "alice", Password: "long-enough", Name: "Alice"}
	suite.user.On("CreateUser", mock.Anything, req).Return(&domain.User{UserID: "u2", Username: "alice", Name: "Alice"}, nil).Once()
	dup := dto.CreateUserRequest{Username: "bob", Password: "long-enough", Name: "Bob"}
	suite.user.On("CreateUser", mock.Anything, dup).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, false)
	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"userID":"u2"`)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", dup, false)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", `{"username":"al","password":"short"}`, false)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCurrentUser() {
	suite.user.On("GetUserByID", mock.Anything, testUserID).Return(&domain.User{UserID: testUserID, Username: "alice"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users/me", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"username":"alice"`)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
