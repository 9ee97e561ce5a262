package services

import (
	"fmt"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/services"
	"github.com/SscSPs/brokerage_trade_ledger/internal/feeplan"
	"github.com/SscSPs/brokerage_trade_ledger/internal/platform/config"
)

// Gateways are the outbound collaborators services talk to. Nil fields disable the integration.
type Gateways struct {
	Ledger  gateways.AccountingLedger
	Tracker gateways.EventTracker
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw Gateways) (*portssvc.ServiceContainer, error) {
	catalog := feeplan.Default()
	if cfg.FeePlanCatalogPath != "" {
		c, err := feeplan.LoadFile(cfg.FeePlanCatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load fee plan catalog: %w", err)
		}
		catalog = c
	}

	container := &portssvc.ServiceContainer{}

	calc := NewCommissionCalculator(catalog, cfg.HSTRate)
	container.Commission = NewCommissionService(calc)

	// EFT numbers are needed by both trades (trust EFTs) and finalization
	container.EFT = NewEFTService(repos.EFTRepo, repos.LedgerRepo)
	container.Trade = NewTradeService(repos.TradeRepo, repos.EFTRepo, container.EFT)

	container.Ledger = NewLedgerService(repos.LedgerRepo, WithAccountingLedger(gw.Ledger))

	finalizationOpts := []FinalizationServiceOption{WithRemoteLedger(gw.Ledger), WithFinalizationLocation(cfg.Timezone)}
	if gw.Tracker != nil {
		finalizationOpts = append(finalizationOpts, WithEventTracker(gw.Tracker))
	}
	container.Finalization = NewFinalizationService(
		repos.TradeRepo,
		container.Ledger,
		container.EFT,
		NewLedgerBuilder(cfg.HSTRate, WithLocation(cfg.Timezone)),
		finalizationOpts...,
	)
	container.Reporting = NewReportingService(repos.TradeRepo, repos.LedgerRepo, repos.EFTRepo, container.Finalization)

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)

	return container, nil
}
