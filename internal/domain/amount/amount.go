// Package amount holds the numeric coercion rules shared by every form-facing
// calculation. Form fields arrive as strings; anything that does not parse as a
// number counts as zero.
package amount

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseOrZero parses a numeric string, returning zero for empty or malformed input.
// Commas are accepted only as thousands separators ("5,000", "1,250.5"); any
// other comma, such as a decimal comma in "1,5", makes the input malformed.
func ParseOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Money rounds to two decimal places.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders a value with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromFloat converts a wire float into a decimal without binary noise.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
