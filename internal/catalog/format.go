package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount in cents as dollars, dropping trailing zeros.
// 16500 becomes "$165" and 16490 becomes "$164.9".
func FormatPrice(cents int64) string {
	return "$" + decimal.New(cents, -2).String()
}

// Pluralize prefixes noun with n, adding an "s" unless n is exactly one.
func Pluralize(noun string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
