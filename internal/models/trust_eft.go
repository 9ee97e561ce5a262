package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TrustEFT is one trust_efts row.
type TrustEFT struct {
	EFTID        string          `db:"eft_id"`
	TradeNumber  string          `db:"trade_number"`
	EFTNumber    string          `db:"eft_number"`
	Account      string          `db:"account"`
	Type         sql.NullString  `db:"eft_type"`
	Amount       decimal.Decimal `db:"amount"`
	EFTDate      *time.Time      `db:"eft_date"`
	PaidTo       sql.NullString  `db:"paid_to"`
	ReceivedFrom sql.NullString  `db:"received_from"`
	AuditFields
}
