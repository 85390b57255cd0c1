package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propfolio/mls-deal-analyzer/config"
)

func TestValidateNumeric(t *testing.T) {
	valid, msg := ValidateNumeric("1200", "Test Field")
	assert.True(t, valid)
	assert.Empty(t, msg)

	valid, msg = ValidateNumeric("$1,200.50", "Test Field")
	assert.True(t, valid)
	assert.Empty(t, msg)

	valid, msg = ValidateNumeric("abc", "Test Field")
	assert.False(t, valid)
	assert.Contains(t, msg, "must be a valid number")

	// Empty is valid: the projection engine defaults it.
	valid, _ = ValidateNumeric("", "Test Field")
	assert.True(t, valid)
}

func TestValidatePercentage(t *testing.T) {
	valid, _ := ValidatePercentage("5.5", "Vacancy Rate")
	assert.True(t, valid)

	valid, msg := ValidatePercentage("150", "Vacancy Rate")
	assert.False(t, valid)
	assert.Contains(t, msg, "must be between 0 and 100")

	valid, msg = ValidatePercentage("abc", "Vacancy Rate")
	assert.False(t, valid)
	assert.Contains(t, msg, "must be a valid percentage")
}

func TestValidateInteger(t *testing.T) {
	valid, _ := ValidateInteger("4", "Units")
	assert.True(t, valid)

	valid, _ = ValidateInteger("4.0", "Units")
	assert.True(t, valid)

	valid, msg := ValidateInteger("4.5", "Units")
	assert.False(t, valid)
	assert.Contains(t, msg, "must be a whole number")
}

func TestValidateFields(t *testing.T) {
	data := map[string]string{
		"number_of_units":       "4",
		"monthly_rent_per_unit": "1200",
		"vacancy_rate":          "5.0",
		"interest_rate":         "6.5",
		"loan_terms_years":      "30",
	}
	assert.Empty(t, ValidateFields(data))

	invalid := map[string]string{
		"number_of_units":       "4.5",
		"vacancy_rate":          "150",
		"monthly_rent_per_unit": "abc",
	}
	errors := ValidateFields(invalid)
	assert.Len(t, errors, 3)
	assert.Contains(t, errors["number_of_units"], "whole number")
	assert.Contains(t, errors["vacancy_rate"], "between 0 and 100")
	assert.Contains(t, errors["monthly_rent_per_unit"], "valid number")
}

func TestShippedDefaultsAreValid(t *testing.T) {
	assert.Empty(t, ValidateFields(config.DefaultValues))
}
