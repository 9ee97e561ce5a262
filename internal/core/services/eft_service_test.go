package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEFTService_UsesSequence(t *testing.T) {
	ctx := context.Background()
	eftRepo := new(MockEFTRepository)
	ledgerRepo := new(MockLedgerRepository)
	eftRepo.On("NextEFTSequence", ctx).Return(int64(317), nil).Once()

	n, err := services.NewEFTService(eftRepo, ledgerRepo).NextEFTNumber(ctx)

	require.NoError(t, err)
	assert.Equal(t, "EFT317", n)
	ledgerRepo.AssertNotCalled(t, "ListEFTReferences", ctx)
}

func TestEFTService_FallsBackToLedgerReferences(t *testing.T) {
	ctx := context.Background()
	eftRepo := new(MockEFTRepository)
	ledgerRepo := new(MockLedgerRepository)
	eftRepo.On("NextEFTSequence", ctx).Return(int64(0), assert.AnError).Once()
	ledgerRepo.On("ListEFTReferences", ctx).Return([]string{"EFT300", "EFT341", "CHQ1"}, nil).Once()

	n, err := services.NewEFTService(eftRepo, ledgerRepo).NextEFTNumber(ctx)

	require.NoError(t, err)
	assert.Equal(t, "EFT342", n)
}

func TestEFTService_FallbackStartsAt300(t *testing.T) {
	ctx := context.Background()
	eftRepo := new(MockEFTRepository)
	ledgerRepo := new(MockLedgerRepository)
	eftRepo.On("NextEFTSequence", ctx).Return(int64(0), assert.AnError).Once()
	ledgerRepo.On("ListEFTReferences", ctx).Return(nil, nil).Once()

	n, err := services.NewEFTService(eftRepo, ledgerRepo).NextEFTNumber(ctx)

	require.NoError(t, err)
	assert.Equal(t, "EFT300", n)
}

func TestEFTService_BothSourcesFail(t *testing.T) {
	ctx := context.Background()
	eftRepo := new(MockEFTRepository)
	ledgerRepo := new(MockLedgerRepository)
	eftRepo.On("NextEFTSequence", ctx).Return(int64(0), assert.AnError).Once()
	ledgerRepo.On("ListEFTReferences", ctx).Return(nil, assert.AnError).Once()

	_, err := services.NewEFTService(eftRepo, ledgerRepo).NextEFTNumber(ctx)

	assert.ErrorIs(t, err, assert.AnError)
}
