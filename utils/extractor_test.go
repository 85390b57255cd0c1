package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractListingFields(t *testing.T) {
	text := `
		Property Information:
		Units: 3
		Monthly rent per unit: $1,500
		Property taxes: $3,600
		Insurance: $1,200
		Interest rate: 6.5%
	`

	result := ExtractListingFields(text)

	assert.Equal(t, "3", result["number_of_units"])
	assert.Equal(t, "1500", result["monthly_rent_per_unit"])
	assert.Equal(t, "3600", result["property_taxes"])
	assert.Equal(t, "1200", result["insurance"])
	assert.Equal(t, "6.5", result["interest_rate"])
}

func TestExtractPurchasePrice(t *testing.T) {
	result := ExtractListingFields("List Price: $485,000")
	assert.Equal(t, "485000", result["purchase_price"])

	result = ExtractListingFields("Asking Price: $250,000")
	assert.Equal(t, "250000", result["purchase_price"])
}

func TestExtractFirstMatchWins(t *testing.T) {
	// The labeled pattern outranks the "-plex" fallback even when the
	// fallback appears earlier in the text.
	text := "Charming 4-plex in Ballard\nUnits: 3\n"

	result := ExtractListingFields(text)

	assert.Equal(t, "3", result["number_of_units"])
}

func TestExtractUnlabeledFallbacks(t *testing.T) {
	result := ExtractListingFields("Property has 4 units total")
	assert.Equal(t, "4", result["number_of_units"])

	result = ExtractListingFields("Beautiful 6-plex near downtown")
	assert.Equal(t, "6", result["number_of_units"])
}

func TestExtractMissingFieldsAreAbsent(t *testing.T) {
	result := ExtractListingFields("Nothing interesting here.")

	_, hasPrice := result["purchase_price"]
	assert.False(t, hasPrice)
	_, hasUnits := result["number_of_units"]
	assert.False(t, hasUnits)
}

func TestExtractIsIdempotent(t *testing.T) {
	text := "Units: 3\nList Price: $300,000\nInterest Rate: 6.5%"

	first := ExtractListingFields(text)
	second := ExtractListingFields(text)

	assert.Equal(t, first, second)
}

func TestExtractCollapsesWhitespace(t *testing.T) {
	result := ExtractListingFields("Property Type:  Multi   Family\n")

	assert.Equal(t, "Multi Family", result["property_type"])
}

func TestExtractFullListing(t *testing.T) {
	text := `
		PROPERTY DETAILS
		MLS#: 2214307
		Units: 6
		Monthly rent per unit: $1,800
		Yr Built: 1978

		EXPENSES
		Property taxes: $8,400
		Insurance: $2,400
		Management Fees: $4,500
		Utilities: $1,200

		FINANCING
		Purchase price: $485,000
		Interest rate: 6.75%
		Loan term: 30 years
		Vacancy rate: 8%
	`

	result := ExtractListingFields(text)

	assert.Equal(t, "2214307", result["mls_number"])
	assert.Equal(t, "6", result["number_of_units"])
	assert.Equal(t, "1800", result["monthly_rent_per_unit"])
	assert.Equal(t, "1978", result["year_built"])
	assert.Equal(t, "8400", result["property_taxes"])
	assert.Equal(t, "2400", result["insurance"])
	assert.Equal(t, "4500", result["property_management_fees"])
	assert.Equal(t, "1200", result["utilities"])
	assert.Equal(t, "485000", result["purchase_price"])
	assert.Equal(t, "30", result["loan_terms_years"])
	assert.Equal(t, "8", result["vacancy_rate"])
}

func TestExtractFallsThroughOnEmptyCapture(t *testing.T) {
	// The first candidate matches "Floor Cvr:" but its capture is pure
	// whitespace; the later candidate should still get its turn.
	text := "Floor Cvr: 123\nFloor Covering: Carpet, Vinyl"

	result := ExtractListingFields(text)

	assert.Equal(t, "Carpet, Vinyl", result["floor_covering"])
}
