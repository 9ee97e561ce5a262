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
	"github.com/google/uuid"
)

type tradeService struct {
	BaseService
	tradeRepo portsrepo.TradeRepositoryFacade
	eftRepo   portsrepo.TrustEFTRepository
	eftSvc    portssvc.EFTSvcFacade
}

// NewTradeService creates a trade service. eftSvc allocates numbers for trust EFTs recorded without one.
func NewTradeService(tradeRepo portsrepo.TradeRepositoryFacade, eftRepo portsrepo.TrustEFTRepository, eftSvc portssvc.EFTSvcFacade) portssvc.TradeSvcFacade {
	return &tradeService{tradeRepo: tradeRepo, eftRepo: eftRepo, eftSvc: eftSvc}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

func (s *tradeService) GetTrade(ctx context.Context, tradeNumber string) (*domain.Trade, error) {
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

func (s *tradeService) UpsertTrade(ctx context.Context, tradeNumber string, trade domain.Trade, userID string) (*domain.Trade, error) {
	tradeNumber = strings.TrimSpace(tradeNumber)
	if tradeNumber == "" {
		return nil, fmt.Errorf("%w: trade number is required", apperrors.ErrValidation)
	}
	if trade.TradeNumber != "" && trade.TradeNumber != tradeNumber {
		return nil, fmt.Errorf("%w: trade number in body does not match path", apperrors.ErrValidation)
	}

	now := time.Now()
	existing, err := s.tradeRepo.FindTradeByNumber(ctx, tradeNumber)
	switch {
	case err == nil:
		if existing.IsFinalized {
			return nil, fmt.Errorf("trade %s is finalized: %w", tradeNumber, apperrors.ErrConflict)
		}
		trade.CreatedAt = existing.CreatedAt
		trade.CreatedBy = existing.CreatedBy
	case errors.Is(err, apperrors.ErrNotFound):
		trade.CreatedAt = now
		trade.CreatedBy = userID
	default:
		s.LogError(ctx, err, "Failed to look up trade before save", slog.String("trade_number", tradeNumber))
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	trade.TradeNumber = tradeNumber
	trade.IsFinalized = false
	trade.FallenThru = false
	trade.FinalizedDate = nil
	trade.LastUpdatedAt = now
	trade.LastUpdatedBy = userID

	if err := s.tradeRepo.SaveTrade(ctx, trade); err != nil {
		s.LogError(ctx, err, "Failed to save trade", slog.String("trade_number", tradeNumber))
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}
	s.LogInfo(ctx, "Trade saved", slog.String("trade_number", tradeNumber))
	return &trade, nil
}

func (s *tradeService) RecordTrustEFT(ctx context.Context, tradeNumber string, eft domain.TrustEFT, userID string) (*domain.TrustEFT, error) {
	if _, err := s.GetTrade(ctx, tradeNumber); err != nil {
		return nil, err
	}
	if eft.Account != domain.TrustAccountCommission && eft.Account != domain.TrustAccountRealEstate {
		return nil, fmt.Errorf("%w: unknown trust account %q", apperrors.ErrValidation, eft.Account)
	}
	if eft.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	if strings.TrimSpace(eft.EFTNumber) == "" {
		number, err := s.eftSvc.NextEFTNumber(ctx)
		if err != nil {
			return nil, err
		}
		eft.EFTNumber = number
	} else {
		eft.EFTNumber = domain.NormalizeEFTNumber(eft.EFTNumber)
	}

	now := time.Now()
	eft.EFTID = uuid.NewString()
	eft.TradeNumber = tradeNumber
	eft.Amount = domain.RoundMoney(eft.Amount)
	eft.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}

	if err := s.eftRepo.SaveTrustEFT(ctx, eft); err != nil {
		s.LogError(ctx, err, "Failed to save trust EFT", slog.String("trade_number", tradeNumber), slog.String("eft_number", eft.EFTNumber))
		return nil, fmt.Errorf("failed to save trust EFT: %w", err)
	}
	return &eft, nil
}

func (s *tradeService) ListTrustEFTs(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error) {
	efts, err := s.eftRepo.ListTrustEFTsByTrade(ctx, tradeNumber)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trust EFTs", slog.String("trade_number", tradeNumber))
		return nil, fmt.Errorf("failed to list trust EFTs: %w", err)
	}
	if efts == nil {
		efts = []domain.TrustEFT{}
	}
	return efts, nil
}
