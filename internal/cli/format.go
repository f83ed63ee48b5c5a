// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a money amount with a currency symbol, digit grouping
// and at most two decimals. e.g., 150000 -> "₹150,000", 2500.5 -> "₹2,500.50"
func FormatAmount(v float64, currency string) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	out := sign + currency + FormatNumber(whole.IntPart())
	if cents := d.Sub(whole).Shift(2).IntPart(); cents != 0 {
		out += fmt.Sprintf(".%02d", cents)
	}
	return out
}

// FormatScore formats a saving score with one decimal and a sign for
// negatives. e.g., 19.9996 -> "20.0", -500000 -> "-500,000.0"
func FormatScore(score float64) string {
	d := decimal.NewFromFloat(score).Round(1)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	tenth := d.Sub(whole).Shift(1).IntPart()
	return fmt.Sprintf("%s%s.%d", sign, FormatNumber(whole.IntPart()), tenth)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatAge formats how long ago t was, relative to now.
// e.g., "just now", "5m ago", "3h ago", "2d ago", or a date past a week.
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}
