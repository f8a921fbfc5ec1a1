// Package rollup - Monetary display formatting
package rollup

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with two decimal places and thousands
// separators. No currency symbol is attached; that is the display
// layer's job.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(intPart) + "." + fracPart
}

// groupThousands inserts a comma every three digits from the right.
// Done on the decimal's own string so precision never round-trips
// through a float.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
