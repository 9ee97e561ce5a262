package models

import "time"

// Trade is the trades table row. The trade document itself is stored as JSONB;
// the finalization columns are kept outside it so they can be filtered and locked.
type Trade struct {
	TradeNumber   string     `db:"trade_number"`
	Document      []byte     `db:"document"`
	IsFinalized   bool       `db:"is_finalized"`
	FallenThru    bool       `db:"fallen_thru"`
	FinalizedDate *time.Time `db:"finalized_date"`
	AuditFields
}
