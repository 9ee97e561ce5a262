package accountingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptLine() domain.LedgerLine {
	l := domain.NewDebitLine(domain.AccountCashCommissionTrust, decimal.RequireFromString("5300"), "Trade #: 1042 - 12 Maple Ave - Received From: Smith Law")
	l.Date = time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	l.DateBasis = domain.DateBasisClosing
	l.ChequeDate = &l.Date
	l.EFTNumber = "EFT301"
	return l
}

func TestClient_PostLine(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ledger", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", "tok", time.Second)
	require.True(t, c.Enabled())

	err := c.PostLine(context.Background(), receiptLine())

	require.NoError(t, err)
	assert.Equal(t, "10004", got["accountNumber"])
	assert.Equal(t, 5300.0, got["debit"])
	assert.Equal(t, 0.0, got["credit"])
	assert.Equal(t, "2025-04-05", got["date"])
	assert.Equal(t, "2025-04-05", got["chequeDate"])
	assert.Equal(t, "EFT301", got["eftNumber"])
}

func TestClient_PostLine_StoredEntryKeepsChequeDate(t *testing.T) {
	var got ledgerLineRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	cheque := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	e := domain.LedgerEntry{
		AccountCode: domain.AccountCashTrust,
		AccountName: domain.AccountCashTrust.Name(),
		Debit:       decimal.RequireFromString("1200"),
		Credit:      decimal.Zero,
		Description: "Trade #: 1042 - Received from: Buyer",
		EntryDate:   time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		ChequeDate:  &cheque,
		Status:      domain.EntryStatusPending,
	}

	err := NewClient(srv.URL, "", time.Second).PostLine(context.Background(), e.LineOf())

	require.NoError(t, err)
	assert.Equal(t, "2025-04-05", got.Date)
	assert.Equal(t, "2025-04-07", got.ChequeDate)
}

func TestClient_PostLine_NoChequeDate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	l := domain.NewCreditLine(domain.AccountCommissionIncome, decimal.RequireFromString("22000"), "Trade #: 1042 - 12 Maple Ave")
	l.Date = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, NewClient(srv.URL, "", time.Second).PostLine(context.Background(), l))
	assert.NotContains(t, got, "chequeDate")
}

func TestClient_FinalizeTrade(t *testing.T) {
	var got finalizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trades/finalize/1042", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	err := c.FinalizeTrade(context.Background(), "1042", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), true)

	require.NoError(t, err)
	assert.Equal(t, finalizeRequest{FinalizedDate: "2025-04-02", FallenThru: true}, got)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server error", http.StatusInternalServerError, "boom", "returned status 500: boom"},
		{"rejected", http.StatusOK, `{"success":false,"message":"Trade already finalized"}`, "Trade already finalized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, "", time.Second).PostLine(context.Background(), receiptLine())

			assert.ErrorIs(t, err, apperrors.ErrUpstream)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient("", "", 0)

	assert.False(t, c.Enabled())
	assert.ErrorIs(t, c.PostLine(context.Background(), receiptLine()), apperrors.ErrUpstream)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "", 20*time.Millisecond).PostLine(context.Background(), receiptLine())

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
