package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a currency-agnostic decimal amount. It serializes as a bare JSON
// number so persisted collections keep amounts as numbers.
type Money struct {
	d decimal.Decimal
}

// NewMoney builds Money from a float, as received from form-style input.
func NewMoney(f float64) Money { return Money{d: decimal.NewFromFloat(f)} }

// NewMoneyFromInt builds Money from a whole amount.
func NewMoneyFromInt(n int64) Money { return Money{d: decimal.NewFromInt(n)} }

// ParseMoney parses a decimal string such as "1250.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{d: d}, nil
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) IsZero() bool { return m.d.IsZero() }
func (m Money) String() string { return m.d.String() }

// StringFixed formats m with exactly places decimals.
func (m Money) StringFixed(places int32) string { return m.d.StringFixed(places) }

func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 returns the nearest float, for gauges and display only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = Money{}
		return nil
	}
	b = bytes.Trim(b, `"`)
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	m.d = d
	return nil
}
