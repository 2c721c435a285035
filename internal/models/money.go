package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in kobo (1/100 of a naira). Keeping amounts as integers
// makes two-decimal arithmetic exact.
type Money int64

// Naira is one naira expressed in kobo
const Naira Money = 100

// ErrInvalidAmount is returned when a monetary amount cannot be parsed
var ErrInvalidAmount = errors.New("invalid monetary amount")

// NewMoneyFromNaira converts a whole naira amount to Money
func NewMoneyFromNaira(naira int64) Money {
	return Money(naira) * Naira
}

// ParseMoney parses a decimal string such as "15000", "425.5" or "0.25".
// At most two fractional digits are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if hasDot && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, ErrInvalidAmount
	}

	var naira int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		naira = n
	}
	if naira > math.MaxInt64/int64(Naira) {
		return 0, fmt.Errorf("%w: amount too large", ErrInvalidAmount)
	}

	var kobo int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		k, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		kobo = k
	}

	m := Money(naira)*Naira + Money(kobo)
	if negative {
		m = -m
	}
	return m, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Kobo returns the raw amount in kobo
func (m Money) Kobo() int64 {
	return int64(m)
}

// Naira returns the amount in naira as a float, for display only
func (m Money) Naira() float64 {
	return float64(m) / float64(Naira)
}

// Mul multiplies the amount by a quantity
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// CheckedMul multiplies the amount by a quantity, reporting false if the
// result does not fit in an int64
func (m Money) CheckedMul(quantity int) (Money, bool) {
	q := Money(quantity)
	if m == 0 || q == 0 {
		return 0, true
	}
	if (m == -1 && q == math.MinInt64) || (q == -1 && m == math.MinInt64) {
		return 0, false
	}
	p := m * q
	if p/q != m {
		return 0, false
	}
	return p, true
}

// CheckedAdd adds two amounts, reporting false on overflow
func (m Money) CheckedAdd(other Money) (Money, bool) {
	sum := m + other
	if (other > 0 && sum < m) || (other < 0 && sum > m) {
		return 0, false
	}
	return sum, true
}

// String renders the amount with exactly two decimal places, e.g. "15000.00"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/int64(Naira), v%int64(Naira))
}

// MarshalJSON encodes the amount as a JSON number with two decimal places
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
