// Package accountingapi pushes ledger lines and finalizations to the remote
// accounting service.
package accountingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/gateways"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote accounting API. A client without a base URL is disabled.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ gateways.AccountingLedger = (*Client)(nil)

// NewClient creates a client for baseURL. token, when set, is sent as a bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type ledgerLineRequest struct {
	AccountNumber string      `json:"accountNumber"`
	AccountName   string      `json:"accountName"`
	Debit         json.Number `json:"debit"`
	Credit        json.Number `json:"credit"`
	Description   string      `json:"description"`
	Date          string      `json:"date"`
	ChequeDate    string      `json:"chequeDate,omitempty"`
	EFTNumber     string      `json:"eftNumber,omitempty"`
}

type finalizeRequest struct {
	FinalizedDate string `json:"finalizedDate"`
	FallenThru    bool   `json:"fallenThru,omitempty"`
}

type apiResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// PostLine posts one ledger line.
func (c *Client) PostLine(ctx context.Context, line domain.LedgerLine) error {
	req := ledgerLineRequest{
		AccountNumber: string(line.AccountCode),
		AccountName:   line.AccountName,
		Debit:         json.Number(line.Debit.StringFixed(2)),
		Credit:        json.Number(line.Credit.StringFixed(2)),
		Description:   line.Description,
		Date:          line.Date.Format(domain.DateLayout),
		EFTNumber:     line.EFTNumber,
	}
	if line.ChequeDate != nil {
		req.ChequeDate = line.ChequeDate.Format(domain.DateLayout)
	}
	return c.post(ctx, "/ledger", req)
}

// FinalizeTrade marks the trade finalized on the remote side.
func (c *Client) FinalizeTrade(ctx context.Context, tradeNumber string, finalizedDate time.Time, fallenThru bool) error {
	return c.post(ctx, "/trades/finalize/"+url.PathEscape(tradeNumber), finalizeRequest{
		FinalizedDate: finalizedDate.Format(domain.DateLayout),
		FallenThru:    fallenThru,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if !c.Enabled() {
		return fmt.Errorf("accounting API is not configured: %w", apperrors.ErrUpstream)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("accounting API request to %s failed: %v: %w", path, err, apperrors.ErrUpstream)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("accounting API %s returned status %d: %s: %w", path, resp.StatusCode, strings.TrimSpace(string(respBody)), apperrors.ErrUpstream)
	}

	var result apiResponse
	if len(respBody) > 0 && json.Unmarshal(respBody, &result) == nil && result.Success != nil && !*result.Success {
		return fmt.Errorf("accounting API %s rejected the request: %s: %w", path, result.Message, apperrors.ErrUpstream)
	}
	return nil
}
