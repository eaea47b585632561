package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a monetary string written with "." as the thousands
// separator and "," as the decimal separator: every "." is stripped, the
// first "," becomes the decimal point, and any remaining character that is
// not a digit, a minus sign or the decimal point is discarded. Unparseable
// input yields zero, never an error.
func ParseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSuffix(b.String(), ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}

	return d
}
