package pgsql

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/SscSPs/brokerage_trade_ledger/internal/apperrors"
	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/brokerage_trade_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/brokerage_trade_ledger/internal/models"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils/mapping"
	"github.com/SscSPs/brokerage_trade_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `entry_id, trade_number, position, account_number, account_name, debit, credit,
	description, entry_date, cheque_date, eft_number, status, sync_attempts, last_sync_error,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// insertLedgerEntries queues one INSERT per entry and sends them as a single batch on tx.
func insertLedgerEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelLedgerEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.TradeNumber,
			m.Position,
			m.AccountNumber,
			m.AccountName,
			m.Debit,
			m.Credit,
			m.Description,
			m.EntryDate,
			m.ChequeDate,
			m.EFTNumber,
			m.Status,
			m.SyncAttempts,
			m.LastSyncError,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	// Close reports the first failed statement
	return tx.SendBatch(ctx, batch).Close()
}

func scanLedgerEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.TradeNumber,
			&m.Position,
			&m.AccountNumber,
			&m.AccountName,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.EntryDate,
			&m.ChequeDate,
			&m.EFTNumber,
			&m.Status,
			&m.SyncAttempts,
			&m.LastSyncError,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// tradeRefPattern is a POSIX regex matching descriptions that mention exactly this
// trade, so "Trade #: 104" does not pick up "Trade #: 1042".
func tradeRefPattern(tradeNumber string) string {
	return regexp.QuoteMeta(domain.TradeRef(tradeNumber)) + "([^0-9]|$)"
}

// ListEntriesByTrade pages through a trade's entries in (entry_date, position, entry_id) order.
func (r *PgxLedgerRepository) ListEntriesByTrade(ctx context.Context, tradeNumber string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE (trade_number = $1 OR description ~ $2)`
	args := []any{tradeNumber, tradeRefPattern(tradeNumber)}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date, position, entry_id) > ($3, $4, $5)`
		args = append(args, cursor.EntryDate, cursor.Position, cursor.EntryID)
	}
	query += ` ORDER BY entry_date, position, entry_id LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for trade "+tradeNumber, err)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(pagination.LedgerCursor{
			EntryDate: last.EntryDate,
			Position:  last.Position,
			EntryID:   last.EntryID,
		})
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

func (r *PgxLedgerRepository) FindEntriesByTradeRef(ctx context.Context, tradeNumber string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE description ~ $1
		ORDER BY entry_date, position, entry_id;`
	rows, err := r.Pool.Query(ctx, query, tradeRefPattern(tradeNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries referencing trade %s: %w", tradeNumber, err)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func (r *PgxLedgerRepository) FindEntriesByEFTNumber(ctx context.Context, eftNumber string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE eft_number = $1
		ORDER BY entry_date, position, entry_id;`
	rows, err := r.Pool.Query(ctx, query, eftNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for %s: %w", eftNumber, err)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func (r *PgxLedgerRepository) FindPendingEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE status = $1
		ORDER BY created_at, trade_number, position
		LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, models.EntryPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending ledger entries: %w", err)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListEFTReferences returns every EFT reference used by ledger entries or trust EFTs.
func (r *PgxLedgerRepository) ListEFTReferences(ctx context.Context) ([]string, error) {
	query := `
		SELECT eft_number FROM ledger_entries WHERE eft_number LIKE 'EFT%'
		UNION
		SELECT eft_number FROM trust_efts WHERE eft_number LIKE 'EFT%';
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query EFT references: %w", err)
	}
	refs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan EFT references: %w", err)
	}
	return refs, nil
}

func (r *PgxLedgerRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if err := insertLedgerEntries(ctx, tx, entries); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger entries", err)
		}
		return nil
	})
}

func (r *PgxLedgerRepository) MarkEntriesPosted(ctx context.Context, entryIDs []string, at time.Time) error {
	if len(entryIDs) == 0 {
		return nil
	}
	query := `
		UPDATE ledger_entries
		SET status = $1, last_sync_error = NULL, last_updated_at = $2
		WHERE entry_id = ANY($3);
	`
	if _, err := r.Pool.Exec(ctx, query, models.EntryPosted, at, entryIDs); err != nil {
		return fmt.Errorf("failed to mark ledger entries posted: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) RecordSyncFailure(ctx context.Context, entryIDs []string, syncErr string, at time.Time) error {
	if len(entryIDs) == 0 {
		return nil
	}
	query := `
		UPDATE ledger_entries
		SET sync_attempts = sync_attempts + 1, last_sync_error = $1, last_updated_at = $2
		WHERE entry_id = ANY($3) AND status = $4;
	`
	if _, err := r.Pool.Exec(ctx, query, syncErr, at, entryIDs, models.EntryPending); err != nil {
		return fmt.Errorf("failed to record ledger sync failure: %w", err)
	}
	return nil
}
