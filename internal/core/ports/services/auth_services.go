package services

import (
	"context"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
