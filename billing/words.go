package billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned by ToWords for negative amounts.
var ErrInvalidAmount = errors.New("invalid amount")

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// ToWords writes n in English using Indian grouping:
// 123456 is "One Lakh Twenty Three Thousand Four Hundred And Fifty Six".
// Amounts of a hundred crore and more repeat the grouping in front of "Crore".
func ToWords(n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d is negative", ErrInvalidAmount, n)
	}
	if n == 0 {
		return "Zero", nil
	}
	return strings.Join(indianWords(n), " "), nil
}

// AmountInWords is ToWords for documents: on any failure it falls back to
// the plain numeral and reports the fallback.
func AmountInWords(n int64) (string, *Diagnostic) {
	words, err := ToWords(n)
	if err != nil {
		return strconv.FormatInt(n, 10), &Diagnostic{
			Kind:    KindConversionFallback,
			Raw:     strconv.FormatInt(n, 10),
			Message: fmt.Sprintf("amount in words unavailable: %v", err),
		}
	}
	return words, nil
}

func indianWords(n int64) []string {
	var parts []string

	if n >= crore {
		parts = append(parts, indianWords(n/crore)...)
		parts = append(parts, "Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, under100(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, under100(n/thousand), "Thousand")
		n %= thousand
	}
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "And")
		}
		parts = append(parts, under100(n))
	}

	return parts
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
