package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money holds a monetary amount in minor units (centavos).
// Example: R$ 10,50 is stored as 1050.
type Money int64

var (
	ErrMalformed  = errors.New("malformed monetary value")
	ErrTooPrecise = errors.New("more than two fractional digits")
	ErrOutOfRange = errors.New("monetary value out of range")
)

// Parse converts a user-supplied decimal string into Money. Both "," and "."
// are accepted as the fractional separator ("10,50" and "10.50" are the same
// value). The input must carry at most two fractional digits.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMalformed
	}

	// Locale normalization: the original forms submit "10,50".
	s = strings.Replace(s, ",", ".", 1)

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, ErrMalformed
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if strings.ContainsAny(whole, ".,") || strings.ContainsAny(frac, ".,") {
		return 0, ErrMalformed
	}
	if len(frac) > 2 {
		return 0, ErrTooPrecise
	}

	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}

	cents := int64(0)
	if frac != "" {
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrMalformed
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	if units > (math.MaxInt64-cents)/100 {
		return 0, ErrOutOfRange
	}
	v := units*100 + cents
	if neg {
		v = -v
	}
	return Money(v), nil
}

// ParseOrZero parses s, treating an absent or blank value as zero.
// Used for optional surcharges, which default to 0.
func ParseOrZero(s string) (Money, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return Parse(s)
}

func (m Money) Add(other Money) Money {
	return m + other
}

func (m Money) IsNegative() bool {
	return m < 0
}

// String renders the amount with a dot separator and two fractional digits.
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float64 is for JSON presentation only; persistence goes through Value/Scan.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Value stores Money as a NUMERIC literal.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan accepts NUMERIC columns surfaced as bytes, string, float64 or int64.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return fmt.Errorf("money scan: %w", err)
		}
		*m = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return fmt.Errorf("money scan: %w", err)
		}
		*m = parsed
		return nil
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	default:
		return fmt.Errorf("money scan: unsupported type %T", src)
	}
}
