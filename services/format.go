package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatINR formats a float64 amount into Indian Rupee notation.
// It uses the Indian numbering system where, after the rightmost 3 digits,
// digits are grouped in pairs (e.g., ₹1,23,45,678.90).
// The result always includes exactly 2 decimal places.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatAmount formats whole rupees with Indian grouping and no symbol, the
// way bill documents print them (1,23,456).
func FormatAmount(n int64) string {
	if n < 0 {
		return "-" + applyIndianGrouping(strconv.FormatInt(-n, 10))
	}
	return applyIndianGrouping(strconv.FormatInt(n, 10))
}

// FormatQty prints whole quantities without decimals and fractional ones
// with up to three.
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return strconv.FormatFloat(math.Round(qty*1000)/1000, 'f', -1, 64)
}

// FormatRate prints a rate with two decimals.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// FormatPercent prints a percentage with two decimals and a % sign.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
