package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders d as US dollars with thousands separators and two
// decimals, e.g. 1234.5 -> "$1,234.50" and -104.7 -> "-$104.70".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	negative := rounded.IsNegative()
	if negative {
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Cents converts d to integer minor units, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}
