package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus tracks whether an entry reached the remote accounting API.
type EntryStatus string

const (
	EntryPending EntryStatus = "PENDING"
	EntryPosted  EntryStatus = "POSTED"
)

// LedgerEntry is one ledger_entries row.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	TradeNumber   sql.NullString  `db:"trade_number"`
	Position      int             `db:"position"`
	AccountNumber string          `db:"account_number"`
	AccountName   string          `db:"account_name"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	EntryDate     time.Time       `db:"entry_date"`
	ChequeDate    *time.Time      `db:"cheque_date"`
	EFTNumber     sql.NullString  `db:"eft_number"`
	Status        EntryStatus     `db:"status"`
	SyncAttempts  int             `db:"sync_attempts"`
	LastSyncError sql.NullString  `db:"last_sync_error"`
	AuditFields
}
