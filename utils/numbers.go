package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount coerces a user or extracted value to a float. Currency
// markers and thousands separators are stripped first. The second
// return is false when the string is empty or not a number; callers
// treat that as a missing input, never as an error.
func ParseAmount(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseWholeNumber parses an integer-typed field, truncating any
// fractional part ("30.0" is 30).
func ParseWholeNumber(value string) (int, bool) {
	f, ok := ParseAmount(value)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// FormatCurrency renders an amount as "$1,234.56".
func FormatCurrency(amount float64) string {
	return "$" + groupThousands(fmt.Sprintf("%.2f", amount))
}

// FormatPercent renders a percentage as "6.50%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatRatio renders a bare ratio with two decimals.
func FormatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// groupThousands inserts comma separators into the integer part of an
// already-formatted decimal string, keeping any leading minus sign.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + fracPart
}
