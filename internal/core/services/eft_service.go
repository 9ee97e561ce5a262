package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
)

type eftService struct {
	BaseService
	sequencer portsrepo.EFTSequencer
	ledger    portsrepo.LedgerEntryReader
}

// NewEFTService creates an EFT number allocator. Numbers come from the database
// sequence; when it is unavailable the highest EFT reference on the ledger is used.
func NewEFTService(sequencer portsrepo.EFTSequencer, ledger portsrepo.LedgerEntryReader) portssvc.EFTSvcFacade {
	return &eftService{sequencer: sequencer, ledger: ledger}
}

var _ portssvc.EFTSvcFacade = (*eftService)(nil)

func (s *eftService) NextEFTNumber(ctx context.Context) (string, error) {
	n, err := s.sequencer.NextEFTSequence(ctx)
	if err == nil {
		return domain.FormatEFTNumber(n), nil
	}
	s.LogError(ctx, err, "EFT sequence unavailable, falling back to ledger references")

	refs, refErr := s.ledger.ListEFTReferences(ctx)
	if refErr != nil {
		s.LogError(ctx, refErr, "Failed to list EFT references")
		return "", fmt.Errorf("failed to allocate EFT number: %w", refErr)
	}
	next := domain.NextEFTNumberAfter(refs)
	s.LogInfo(ctx, "Allocated EFT number from ledger references", slog.Int64("eft", next))
	return domain.FormatEFTNumber(next), nil
}
