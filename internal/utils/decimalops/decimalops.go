// Package decimalops provides the exact-arithmetic primitives every money
// computation routes through. A Calculator is built once from an explicit
// Config and passed to the components that need it.
package decimalops

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	// ErrDivisionByZero is returned by every division whose divisor is zero.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", apperrors.ErrArithmetic)
	// ErrInvalidDecimal is returned when an operand cannot be parsed as a decimal.
	ErrInvalidDecimal = fmt.Errorf("%w: invalid decimal", apperrors.ErrValidation)
	// ErrEmptyInput is returned by aggregate operations that need at least one value.
	ErrEmptyInput = fmt.Errorf("%w: empty input", apperrors.ErrValidation)
)

// Config holds the arithmetic settings shared by a computation.
type Config struct {
	// DivisionPrecision is the number of fractional digits kept by divisions.
	DivisionPrecision int32
	// DisplayPlaces is the number of fractional digits used when formatting amounts.
	DisplayPlaces int32
}

// DefaultConfig returns the accounting defaults: 34 fractional digits for divisions
// and two display places.
func DefaultConfig() Config {
	return Config{DivisionPrecision: 34, DisplayPlaces: 2}
}

// Calculator performs decimal operations with a fixed Config.
// Rounding is always half-up (ties away from zero), never banker's rounding.
type Calculator struct {
	cfg Config
}

// New creates a Calculator. Non-positive settings fall back to DefaultConfig values.
func New(cfg Config) *Calculator {
	def := DefaultConfig()
	if cfg.DivisionPrecision <= 0 {
		cfg.DivisionPrecision = def.DivisionPrecision
	}
	if cfg.DisplayPlaces < 0 {
		cfg.DisplayPlaces = def.DisplayPlaces
	}
	return &Calculator{cfg: cfg}
}

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Parse converts a string or numeric operand into a decimal. Strings are trimmed first.
func (c *Calculator) Parse(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, fmt.Errorf("%w: nil", ErrInvalidDecimal)
		}
		return *val, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidDecimal)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, val)
		}
		return d, nil
	case json.Number:
		return c.Parse(string(val))
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint32:
		return decimal.NewFromInt(int64(val)), nil
	case float32:
		return c.Parse(float64(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidDecimal, val)
		}
		return decimal.NewFromFloat(val), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrInvalidDecimal, v)
	}
}

func (c *Calculator) parsePair(a, b any) (decimal.Decimal, decimal.Decimal, error) {
	x, err := c.Parse(a)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	y, err := c.Parse(b)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return x, y, nil
}

// Add returns a + b as a canonical decimal string.
func (c *Calculator) Add(a, b any) (string, error) {
	x, y, err := c.parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Add(y).String(), nil
}

// Sub returns a - b as a canonical decimal string.
func (c *Calculator) Sub(a, b any) (string, error) {
	x, y, err := c.parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Sub(y).String(), nil
}

// Mul returns a * b as a canonical decimal string.
func (c *Calculator) Mul(a, b any) (string, error) {
	x, y, err := c.parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Mul(y).String(), nil
}

// Div returns a / b as a canonical decimal string. A zero divisor fails with ErrDivisionByZero.
func (c *Calculator) Div(a, b any) (string, error) {
	x, y, err := c.parsePair(a, b)
	if err != nil {
		return "", err
	}
	q, err := c.DivDecimal(x, y)
	if err != nil {
		return "", err
	}
	return q.String(), nil
}

// DivDecimal divides two decimals at the configured precision, rounding half-up.
func (c *Calculator) DivDecimal(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return x.DivRound(y, c.cfg.DivisionPrecision), nil
}

// Abs returns |a|.
func (c *Calculator) Abs(a any) (string, error) {
	x, err := c.Parse(a)
	if err != nil {
		return "", err
	}
	return x.Abs().String(), nil
}

// Neg returns -a.
func (c *Calculator) Neg(a any) (string, error) {
	x, err := c.Parse(a)
	if err != nil {
		return "", err
	}
	return x.Neg().String(), nil
}

// Cmp compares a and b and returns -1, 0 or +1.
func (c *Calculator) Cmp(a, b any) (int, error) {
	x, y, err := c.parsePair(a, b)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

// Equal reports whether a == b numerically ("1.50" equals "1.5").
func (c *Calculator) Equal(a, b any) (bool, error) {
	cmp, err := c.Cmp(a, b)
	return err == nil && cmp == 0, err
}

// GreaterThan reports whether a > b.
func (c *Calculator) GreaterThan(a, b any) (bool, error) {
	cmp, err := c.Cmp(a, b)
	return err == nil && cmp > 0, err
}

// GreaterThanOrEqual reports whether a >= b.
func (c *Calculator) GreaterThanOrEqual(a, b any) (bool, error) {
	cmp, err := c.Cmp(a, b)
	return err == nil && cmp >= 0, err
}

// LessThan reports whether a < b.
func (c *Calculator) LessThan(a, b any) (bool, error) {
	cmp, err := c.Cmp(a, b)
	return err == nil && cmp < 0, err
}

// LessThanOrEqual reports whether a <= b.
func (c *Calculator) LessThanOrEqual(a, b any) (bool, error) {
	cmp, err := c.Cmp(a, b)
	return err == nil && cmp <= 0, err
}

// IsZero reports whether a == 0.
func (c *Calculator) IsZero(a any) (bool, error) {
	x, err := c.Parse(a)
	return err == nil && x.IsZero(), err
}

// IsPositive reports whether a > 0.
func (c *Calculator) IsPositive(a any) (bool, error) {
	x, err := c.Parse(a)
	return err == nil && x.IsPositive(), err
}

// IsNegative reports whether a < 0.
func (c *Calculator) IsNegative(a any) (bool, error) {
	x, err := c.Parse(a)
	return err == nil && x.IsNegative(), err
}

// IsValid reports whether v parses as a decimal.
func (c *Calculator) IsValid(v any) bool {
	_, err := c.Parse(v)
	return err == nil
}

func (c *Calculator) parseAll(values []any) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))
	for i, v := range values {
		d, err := c.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// SumDecimal adds decimals. The sum of no values is zero.
func SumDecimal(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Sum adds all values. The sum of an empty list is "0".
func (c *Calculator) Sum(values ...any) (string, error) {
	ds, err := c.parseAll(values)
	if err != nil {
		return "", err
	}
	return SumDecimal(ds...).String(), nil
}

// Min returns the smallest value.
func (c *Calculator) Min(values ...any) (string, error) {
	ds, err := c.parseAll(values)
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return "", ErrEmptyInput
	}
	return decimal.Min(ds[0], ds[1:]...).String(), nil
}

// Max returns the largest value.
func (c *Calculator) Max(values ...any) (string, error) {
	ds, err := c.parseAll(values)
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return "", ErrEmptyInput
	}
	return decimal.Max(ds[0], ds[1:]...).String(), nil
}

// Average returns the arithmetic mean at the configured division precision.
func (c *Calculator) Average(values ...any) (string, error) {
	ds, err := c.parseAll(values)
	if err != nil {
		return "", err
	}
	if len(ds) == 0 {
		return "", ErrEmptyInput
	}
	avg, err := c.DivDecimal(SumDecimal(ds...), decimal.NewFromInt(int64(len(ds))))
	if err != nil {
		return "", err
	}
	return avg.String(), nil
}

// Round rounds a half-up to the given number of fractional places.
func (c *Calculator) Round(a any, places int32) (string, error) {
	x, err := c.Parse(a)
	if err != nil {
		return "", err
	}
	return c.RoundDecimal(x, places).String(), nil
}

// RoundDecimal rounds half-up (ties away from zero) to places.
func (c *Calculator) RoundDecimal(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Round(places)
}

// IsBalanced sums each side independently and reports whether the totals are equal.
// This is the double-entry invariant: sum(debits) == sum(credits).
func (c *Calculator) IsBalanced(debits, credits []any) (bool, error) {
	ds, err := c.parseAll(debits)
	if err != nil {
		return false, fmt.Errorf("debits: %w", err)
	}
	cs, err := c.parseAll(credits)
	if err != nil {
		return false, fmt.Errorf("credits: %w", err)
	}
	return IsBalancedDecimal(ds, cs), nil
}

// IsBalancedDecimal is IsBalanced for already parsed values.
func IsBalancedDecimal(debits, credits []decimal.Decimal) bool {
	return SumDecimal(debits...).Equal(SumDecimal(credits...))
}

// IsDivisionByZero reports whether err came from a zero divisor.
func IsDivisionByZero(err error) bool {
	return errors.Is(err, ErrDivisionByZero)
}
