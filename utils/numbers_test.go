package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	value, ok := ParseAmount("$1,234.56")
	assert.True(t, ok)
	assert.Equal(t, 1234.56, value)

	value, ok = ParseAmount("300000")
	assert.True(t, ok)
	assert.Equal(t, 300000.0, value)

	_, ok = ParseAmount("")
	assert.False(t, ok)

	_, ok = ParseAmount("  ")
	assert.False(t, ok)

	_, ok = ParseAmount("three thousand")
	assert.False(t, ok)
}

func TestParseWholeNumber(t *testing.T) {
	value, ok := ParseWholeNumber("30.0")
	assert.True(t, ok)
	assert.Equal(t, 30, value)

	value, ok = ParseWholeNumber("4.9")
	assert.True(t, ok)
	assert.Equal(t, 4, value)

	_, ok = ParseWholeNumber("n/a")
	assert.False(t, ok)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$54,000.00", FormatCurrency(54000))
	assert.Equal(t, "$1,516.96", FormatCurrency(1516.96))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$999.99", FormatCurrency(999.99))
	assert.Equal(t, "$1,234,567.80", FormatCurrency(1234567.8))
	assert.Equal(t, "$-3,600.00", FormatCurrency(-3600))
}

func TestFormatPercentAndRatio(t *testing.T) {
	assert.Equal(t, "11.73%", FormatPercent(11.726667))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "5.56", FormatRatio(5.5556))
	assert.Equal(t, "1.93", FormatRatio(1.9326))
}
