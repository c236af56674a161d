package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents.
type Money int64

// MaxMoney is the largest accepted amount, 999,999,999.99. Amounts are
// summed in BIGINT, so inputs stay far below the int64 range.
const MaxMoney Money = 99_999_999_999

// ErrInvalidAmount is returned for amounts that are not numbers, carry more
// than two decimals, or exceed MaxMoney.
var ErrInvalidAmount = errors.New("invalid amount")

var maxMoneyDecimal = decimal.NewFromInt(int64(MaxMoney))

// ParseMoney parses a decimal string such as "12.5", "130.00" or "1e2" exactly.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	return moneyFromDecimal(d, s)
}

func moneyFromDecimal(d decimal.Decimal, raw string) (Money, error) {
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than two decimals", ErrInvalidAmount, raw)
	}
	if cents.Abs().GreaterThan(maxMoneyDecimal) {
		return 0, fmt.Errorf("%w: %s exceeds %s", ErrInvalidAmount, raw, MaxMoney)
	}
	return Money(cents.IntPart()), nil
}

// Cents returns the raw amount.
func (m Money) Cents() int64 { return int64(m) }

// Float64 returns the amount in whole units.
func (m Money) Float64() float64 { return float64(m) / 100 }

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. The literal text is
// parsed, never a float64.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s is not a number", ErrInvalidAmount, data)
		}
		raw = n.String()
	}

	v, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
