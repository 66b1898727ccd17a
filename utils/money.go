package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ParseAmount parses a user-entered money value. Anything that does not
// parse as a decimal (including the empty string) counts as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount parses a user-entered quantity. Fractional input is
// truncated toward zero; unparsable input counts as zero.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// FormatMoney renders an amount with two decimals and a dollar sign,
// the way the invoice views print totals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
