package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Amount     decimal.Decimal  `json:"amount" binding:"money"`
	Percentage *decimal.Decimal `json:"percentage" binding:"omitempty,percent"`
	Date       string           `json:"date" binding:"isodate"`
	Side       string           `json:"side" binding:"omitempty,oneof=A B"`
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{Amount: decimal.NewFromInt(10), Percentage: pct("100"), Date: "2025-01-31"}},
		{name: "zero values", in: sample{}},
		{name: "negative amount", in: sample{Amount: decimal.NewFromInt(-1)}, wantErr: "Amount must be a non-negative amount"},
		{name: "percent over 100", in: sample{Percentage: pct("100.01")}, wantErr: "Percentage must be between 0 and 100"},
		{name: "bad date", in: sample{Date: "31/01/2025"}, wantErr: "Date must be a date in YYYY-MM-DD format"},
		{name: "bad side", in: sample{Side: "C"}, wantErr: "Side must be one of [A B]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
