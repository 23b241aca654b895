package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidMoney is returned when a value is not a number with at most two decimal places.
var ErrInvalidMoney = errors.New("must be a number with at most two decimal places")

// decimalLiteral is the JSON number grammar, leading zeros tolerated.
var decimalLiteral = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]{1,3})?$`)

// Money is an amount in cents. It is stored as NUMERIC(12,2) and written on the
// wire as a plain JSON number so two-decimal values round-trip exactly.
type Money int64

// MaxPrice is the largest amount a NUMERIC(12,2) price column holds.
const MaxPrice Money = 999_999_999_999

// ParseMoney parses a decimal literal (exponents allowed) into cents without
// going through float64.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !decimalLiteral.MatchString(s) {
		return 0, ErrInvalidMoney
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, ErrInvalidMoney
	}
	r.Mul(r, big.NewRat(100, 1))
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, ErrInvalidMoney
	}
	return Money(r.Num().Int64()), nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// String formats the amount with exactly two decimals, e.g. "100.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON writes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts JSON numbers only.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		return ErrInvalidMoney
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value implements driver.Valuer; NUMERIC accepts the decimal text form.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (m *Money) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return fmt.Errorf("money: cannot scan NULL")
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
	v, err := ParseMoney(s)
	if err != nil {
		return fmt.Errorf("money: %q: %w", s, err)
	}
	*m = v
	return nil
}
