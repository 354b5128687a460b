package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a vendor display string ("USD 1,500.00", "¥800.00")
// into a decimal. Everything except digits and the decimal point is
// stripped first. Returns (0, false) when nothing parsable remains, e.g.
// "TBD" or an empty field.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}
