package pgsql

import (
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TradeRepo:  newPgxTradeRepository(dbPool),
		LedgerRepo: newPgxLedgerRepository(dbPool),
		EFTRepo:    newPgxEFTRepository(dbPool),
		UserRepo:   newPgxUserRepository(dbPool),
	}
}
