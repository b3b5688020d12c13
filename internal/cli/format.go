// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// currencySymbols maps ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatMoney formats an amount in the given currency.
// Unknown currencies fall back to "CODE amount".
func FormatMoney(amount float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		if amount < 0 {
			return fmt.Sprintf("-%s%.2f", sym, -amount)
		}
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// FormatDelta formats a signed spend change versus a prior period.
func FormatDelta(current, previous float64, currency string) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, currency)
	}
	return "-" + FormatMoney(-delta, currency)
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

// FormatPercent formats a 0-100 percentage for display.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate renders a date in compact form, e.g. "Jun 2, 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatMonth renders a "2006-01" month key as "Jan 2006".
func FormatMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// TitleCase upper-cases the first rune, for category labels.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
