package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every posted amount is rounded to.
const MoneyPlaces = 2

// Amount is a money value read from trade documents. Documents come from a form
// front-end, so it accepts JSON numbers, numeric strings, "", "-" and null; the
// last three decode to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses s the same way UnmarshalJSON does.
func AmountFromString(s string) (Amount, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return Amount{Decimal: decimal.Zero}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := AmountFromString(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	return a.Decimal.UnmarshalJSON(b)
}

// MarshalJSON always writes a quoted fixed-point string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(MoneyPlaces))
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
