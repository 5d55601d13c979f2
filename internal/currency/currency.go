// Package currency formats and parses shilling amounts for display.
package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmuriithi/campuscafe/internal/model"
)

const (
	// DefaultCode is the only currency the cafeteria prices in.
	DefaultCode = "KES"
	symbol      = "KSH"

	// DefaultTaxRate is the percentage applied by TotalWithTax when the
	// caller has no override.
	DefaultTaxRate = 8.875
)

// Format renders an amount as "KSH 123.00". NaN and infinite values
// render as zero.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return symbol + " " + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Parse extracts the numeric amount from a currency string such as
// "KSH 1,250.50". Unparseable input yields 0.
func Parse(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return amount
}

// Subtotal sums quantity × unit price over the given lines.
func Subtotal(lines []model.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// Tax returns the tax amount for a subtotal at the given percentage rate.
func Tax(subtotal, rate float64) float64 {
	if math.IsNaN(subtotal) {
		subtotal = 0
	}
	return subtotal * (rate / 100)
}

// TotalWithTax returns subtotal plus tax at the given percentage rate.
func TotalWithTax(subtotal, rate float64) float64 {
	return subtotal + Tax(subtotal, rate)
}
