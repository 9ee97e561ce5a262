package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTradeRepository struct {
	BaseRepository
}

func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

func (r *PgxTradeRepository) FindTradeByNumber(ctx context.Context, tradeNumber string) (*domain.Trade, error) {
	query := `
		SELECT trade_number, document, is_finalized, fallen_thru, finalized_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM trades
		WHERE trade_number = $1;
	`
	var m models.Trade
	err := r.Pool.QueryRow(ctx, query, tradeNumber).Scan(
		&m.TradeNumber,
		&m.Document,
		&m.IsFinalized,
		&m.FallenThru,
		&m.FinalizedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trade %s: %w", tradeNumber, err)
	}

	trade, err := mapping.ToDomainTrade(m)
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// SaveTrade upserts the trade document. The WHERE on the conflict branch keeps
// finalized trades untouched, which shows up as zero affected rows.
func (r *PgxTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	m, err := mapping.ToModelTrade(trade)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO trades (trade_number, document, is_finalized, fallen_thru, finalized_date,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, FALSE, FALSE, NULL, $3, $4, $5, $6)
		ON CONFLICT (trade_number) DO UPDATE SET
			document = EXCLUDED.document,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE trades.is_finalized = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TradeNumber,
		m.Document,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade %s: %w", trade.TradeNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("trade %s is finalized: %w", trade.TradeNumber, apperrors.ErrConflict)
	}
	return nil
}

// SaveFinalization flips the trade to finalized and inserts its ledger entries in one transaction.
func (r *PgxTradeRepository) SaveFinalization(ctx context.Context, trade domain.Trade, entries []domain.LedgerEntry) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE trades
			SET is_finalized = TRUE, fallen_thru = $2, finalized_date = $3,
			    last_updated_at = $4, last_updated_by = $5
			WHERE trade_number = $1 AND is_finalized = FALSE;
		`
		cmdTag, err := tx.Exec(ctx, query,
			trade.TradeNumber,
			trade.FallenThru,
			trade.FinalizedDate,
			trade.LastUpdatedAt,
			trade.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to finalize trade "+trade.TradeNumber, err)
		}
		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM trades WHERE trade_number = $1)`, trade.TradeNumber).Scan(&exists); err != nil {
				return apperrors.NewAppError(500, "failed to check trade "+trade.TradeNumber, err)
			}
			if !exists {
				return fmt.Errorf("trade %s: %w", trade.TradeNumber, apperrors.ErrNotFound)
			}
			return fmt.Errorf("trade %s is already finalized: %w", trade.TradeNumber, apperrors.ErrConflict)
		}

		if len(entries) == 0 {
			return nil
		}
		if err := insertLedgerEntries(ctx, tx, entries); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger entries for trade "+trade.TradeNumber, err)
		}
		return nil
	})
}
