package decimalops

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format rounds a half-up to places and renders it with thousands separators,
// e.g. 1234567.891 with 2 places becomes "1,234,567.89".
func (c *Calculator) Format(a any, places int32) (string, error) {
	x, err := c.Parse(a)
	if err != nil {
		return "", err
	}
	return c.FormatDecimal(x, places), nil
}

// FormatAmount formats with the configured display places.
func (c *Calculator) FormatAmount(x decimal.Decimal) string {
	return c.FormatDecimal(x, c.cfg.DisplayPlaces)
}

// FormatDecimal is Format for an already parsed value.
func (c *Calculator) FormatDecimal(x decimal.Decimal, places int32) string {
	if places < 0 {
		places = 0
	}
	rounded := c.RoundDecimal(x, places)
	fixed := rounded.Abs().StringFixed(places)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return rounded.StringFixed(places)
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(humanize.BigComma(n))
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
