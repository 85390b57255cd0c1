package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/propfolio/mls-deal-analyzer/config"
)

// ValidateNumeric checks a currency-like field. Empty is valid: the
// projection engine falls back to defaults for empty inputs, the
// validator only flags values that would silently turn into nulls.
func ValidateNumeric(value, fieldName string) (bool, string) {
	if value == "" {
		return true, ""
	}
	if _, ok := ParseAmount(value); !ok {
		return false, fmt.Sprintf("%s must be a valid number", fieldName)
	}
	return true, ""
}

// ValidatePercentage checks a percentage field is a number in [0, 100].
func ValidatePercentage(value, fieldName string) (bool, string) {
	if value == "" {
		return true, ""
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return false, fmt.Sprintf("%s must be a valid percentage", fieldName)
	}
	if num < 0 || num > 100 {
		return false, fmt.Sprintf("%s must be between 0 and 100", fieldName)
	}
	return true, ""
}

// ValidateInteger checks an integer field, rejecting true fractions
// like "4.5" while accepting "4.0".
func ValidateInteger(value, fieldName string) (bool, string) {
	if value == "" {
		return true, ""
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false, fmt.Sprintf("%s must be a whole number", fieldName)
	}
	if strings.Contains(value, ".") && f != float64(int(f)) {
		return false, fmt.Sprintf("%s must be a whole number", fieldName)
	}
	return true, ""
}

// ValidateFields runs the type-appropriate check over every known field
// present in data and returns field-keyed error messages. An empty map
// means everything is valid.
func ValidateFields(data map[string]string) map[string]string {
	errors := make(map[string]string)

	for _, field := range config.NumericFields {
		if value, ok := data[field]; ok {
			if valid, msg := ValidateNumeric(value, fieldTitle(field)); !valid {
				errors[field] = msg
			}
		}
	}
	for _, field := range config.PercentageFields {
		if value, ok := data[field]; ok {
			if valid, msg := ValidatePercentage(value, fieldTitle(field)); !valid {
				errors[field] = msg
			}
		}
	}
	for _, field := range config.IntegerFields {
		if value, ok := data[field]; ok {
			if valid, msg := ValidateInteger(value, fieldTitle(field)); !valid {
				errors[field] = msg
			}
		}
	}

	return errors
}

// fieldTitle turns "monthly_rent_per_unit" into "Monthly Rent Per Unit"
// for human-readable messages.
func fieldTitle(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
