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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEFTRepository struct {
	BaseRepository
}

func newPgxEFTRepository(pool *pgxpool.Pool) portsrepo.EFTRepositoryFacade {
	return &PgxEFTRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EFTRepositoryFacade = (*PgxEFTRepository)(nil)

func (r *PgxEFTRepository) NextEFTSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('eft_number_seq');`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to read eft_number_seq: %w", err)
	}
	return n, nil
}

func (r *PgxEFTRepository) SaveTrustEFT(ctx context.Context, eft domain.TrustEFT) error {
	m := mapping.ToModelTrustEFT(eft)
	query := `
		INSERT INTO trust_efts (eft_id, trade_number, eft_number, account, eft_type, amount, eft_date,
		                        paid_to, received_from, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EFTID,
		m.TradeNumber,
		m.EFTNumber,
		m.Account,
		m.Type,
		m.Amount,
		m.EFTDate,
		m.PaidTo,
		m.ReceivedFrom,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("%s is already recorded for trade %s: %w", eft.EFTNumber, eft.TradeNumber, apperrors.ErrDuplicate)
			case "23503": // foreign_key_violation
				return fmt.Errorf("trade %s: %w", eft.TradeNumber, apperrors.ErrNotFound)
			}
		}
		return fmt.Errorf("failed to save trust EFT: %w", err)
	}
	return nil
}

func (r *PgxEFTRepository) ListTrustEFTsByTrade(ctx context.Context, tradeNumber string) ([]domain.TrustEFT, error) {
	query := `
		SELECT eft_id, trade_number, eft_number, account, eft_type, amount, eft_date,
		       paid_to, received_from, created_at, created_by, last_updated_at, last_updated_by
		FROM trust_efts
		WHERE trade_number = $1
		ORDER BY created_at, eft_number;
	`
	rows, err := r.Pool.Query(ctx, query, tradeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query trust EFTs for trade %s: %w", tradeNumber, err)
	}
	defer rows.Close()

	efts := []models.TrustEFT{}
	for rows.Next() {
		var m models.TrustEFT
		err := rows.Scan(
			&m.EFTID,
			&m.TradeNumber,
			&m.EFTNumber,
			&m.Account,
			&m.Type,
			&m.Amount,
			&m.EFTDate,
			&m.PaidTo,
			&m.ReceivedFrom,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trust EFT row: %w", err)
		}
		efts = append(efts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trust EFT rows: %w", err)
	}
	return mapping.ToDomainTrustEFTSlice(efts), nil
}
