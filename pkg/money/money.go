// Package money formats decimal USD amounts for display.
package money

import "github.com/shopspring/decimal"

// Format renders d as dollars with thousands separators and two decimals,
// e.g. "$1,234.57". Rounding happens here and nowhere else.
func Format(d decimal.Decimal) string {
	rounded := d.Round(2)
	s := rounded.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	out := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(out) + frac
}
