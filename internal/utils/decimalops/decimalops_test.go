package decimalops_test

import (
	"errors"
	"math"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalc() *decimalops.Calculator {
	return decimalops.New(decimalops.DefaultConfig())
}

func TestCalculator_AddThenSubRestoresOperand(t *testing.T) {
	calc := newCalc()
	pairs := [][2]string{
		{"0.1", "0.2"},
		{"123456789012345678901234.5678", "0.0000000001"},
		{"-42.42", "42.42"},
		{"1e-20", "99999999999999999999"},
	}
	for _, p := range pairs {
		sum, err := calc.Add(p[0], p[1])
		require.NoError(t, err)
		back, err := calc.Sub(sum, p[1])
		require.NoError(t, err)
		eq, err := calc.Equal(back, p[0])
		require.NoError(t, err)
		assert.True(t, eq, "add(%s, %s) - %s should equal %s, got %s", p[0], p[1], p[1], p[0], back)
	}
}

func TestCalculator_AddIsExact(t *testing.T) {
	calc := newCalc()
	sum, err := calc.Add("0.1", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "0.3", sum)
}

func TestCalculator_ParseTrimsStrings(t *testing.T) {
	calc := newCalc()
	d, err := calc.Parse("  12.50\t")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	_, err = calc.Parse("   ")
	assert.ErrorIs(t, err, decimalops.ErrInvalidDecimal)
	_, err = calc.Parse("12,50")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = calc.Parse(math.NaN())
	assert.Error(t, err)
	_, err = calc.Parse(struct{}{})
	assert.Error(t, err)
}

func TestCalculator_IsValid(t *testing.T) {
	calc := newCalc()
	assert.True(t, calc.IsValid("1.23"))
	assert.True(t, calc.IsValid(7))
	assert.True(t, calc.IsValid(decimal.NewFromInt(3)))
	assert.False(t, calc.IsValid("abc"))
	assert.False(t, calc.IsValid(math.Inf(1)))
}

func TestCalculator_DivideByZeroFails(t *testing.T) {
	calc := newCalc()
	for _, zero := range []any{0, "0", "0.000", decimal.Zero} {
		_, err := calc.Div("10", zero)
		require.Error(t, err)
		assert.True(t, errors.Is(err, decimalops.ErrDivisionByZero))
		assert.True(t, errors.Is(err, apperrors.ErrArithmetic))
	}
}

func TestCalculator_Div(t *testing.T) {
	calc := newCalc()
	q, err := calc.Div("10", "4")
	require.NoError(t, err)
	assert.Equal(t, "2.5", q)

	q, err = calc.Div("1", "3")
	require.NoError(t, err)
	assert.Equal(t, "0."+repeat("3", 34), q)

	q, err = calc.Div("2", "3")
	require.NoError(t, err)
	assert.Equal(t, "0."+repeat("6", 33)+"7", q, "last digit rounds half-up")
}

func TestCalculator_RoundHalfUp(t *testing.T) {
	calc := newCalc()
	tests := []struct {
		in     string
		places int32
		want   string
	}{
		{"2.345", 2, "2.35"},
		{"-2.345", 2, "-2.35"},
		{"2.5", 0, "3"},
		{"3.5", 0, "4"},
		{"-2.5", 0, "-3"},
		{"2.344", 2, "2.34"},
		{"1234.5", -1, "1230"},
	}
	for _, tt := range tests {
		got, err := calc.Round(tt.in, tt.places)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "round(%s, %d)", tt.in, tt.places)
	}
}

func TestCalculator_Format(t *testing.T) {
	calc := newCalc()
	tests := []struct {
		in     any
		places int32
		want   string
	}{
		{"1234567.891", 2, "1,234,567.89"},
		{"-1234.5", 2, "-1,234.50"},
		{"0", 2, "0.00"},
		{"999.995", 2, "1,000.00"},
		{"-0.004", 2, "0.00"},
		{"123456789012345678901234", 0, "123,456,789,012,345,678,901,234"},
		{100, 2, "100.00"},
	}
	for _, tt := range tests {
		got, err := calc.Format(tt.in, tt.places)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "format(%v, %d)", tt.in, tt.places)
	}
	assert.Equal(t, "1,000.10", calc.FormatAmount(decimal.RequireFromString("1000.1")))
}

func TestCalculator_Comparisons(t *testing.T) {
	calc := newCalc()
	eq, err := calc.Equal("1.50", "1.5")
	require.NoError(t, err)
	assert.True(t, eq)

	gt, err := calc.GreaterThan("2", "1.999")
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := calc.LessThan("-1", 0)
	require.NoError(t, err)
	assert.True(t, lt)

	ge, err := calc.GreaterThanOrEqual("1", "1.0")
	require.NoError(t, err)
	assert.True(t, ge)

	le, err := calc.LessThanOrEqual("1.01", "1")
	require.NoError(t, err)
	assert.False(t, le)

	_, err = calc.Equal("x", "1")
	assert.Error(t, err)
}

func TestCalculator_Predicates(t *testing.T) {
	calc := newCalc()
	z, _ := calc.IsZero("0.00")
	p, _ := calc.IsPositive("0.01")
	n, _ := calc.IsNegative("-0.01")
	assert.True(t, z)
	assert.True(t, p)
	assert.True(t, n)

	abs, err := calc.Abs("-3.2")
	require.NoError(t, err)
	assert.Equal(t, "3.2", abs)
	neg, err := calc.Neg("3.2")
	require.NoError(t, err)
	assert.Equal(t, "-3.2", neg)
	prod, err := calc.Mul("1.5", "-2")
	require.NoError(t, err)
	assert.Equal(t, "-3", prod)
}

func TestCalculator_Aggregates(t *testing.T) {
	calc := newCalc()
	sum, err := calc.Sum("1.1", 2, "3.3")
	require.NoError(t, err)
	assert.Equal(t, "6.4", sum)

	empty, err := calc.Sum()
	require.NoError(t, err)
	assert.Equal(t, "0", empty)

	minV, err := calc.Min("3", "-1.5", "2")
	require.NoError(t, err)
	assert.Equal(t, "-1.5", minV)

	maxV, err := calc.Max("3", "-1.5", "2")
	require.NoError(t, err)
	assert.Equal(t, "3", maxV)

	avg, err := calc.Average("1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "2", avg)

	_, err = calc.Min()
	assert.ErrorIs(t, err, decimalops.ErrEmptyInput)
	_, err = calc.Average()
	assert.ErrorIs(t, err, decimalops.ErrEmptyInput)
}

func TestCalculator_IsBalanced(t *testing.T) {
	calc := newCalc()

	ok, err := calc.IsBalanced([]any{"100", "50"}, []any{"150"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = calc.IsBalanced([]any{"100", "50"}, []any{"149.99"})
	require.NoError(t, err)
	assert.False(t, ok)

	a, b := "12.34", "0.66"
	sum, err := calc.Add(a, b)
	require.NoError(t, err)
	ok, err = calc.IsBalanced([]any{a, b}, []any{sum})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = calc.IsBalanced([]any{"1"}, []any{"oops"})
	assert.Error(t, err)
}

func TestNew_FallsBackToDefaults(t *testing.T) {
	calc := decimalops.New(decimalops.Config{})
	assert.Equal(t, decimalops.DefaultConfig().DivisionPrecision, calc.Config().DivisionPrecision)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
