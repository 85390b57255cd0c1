package utils

import (
	"regexp"
	"strings"
)

// fieldPatterns is one extraction target: the field key, an ordered
// candidate list (most specific label format first, generic fallbacks
// last), and whether captures should be normalized as numbers.
type fieldPatterns struct {
	key      string
	numeric  bool
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		// Listing sheets wrap labels across lines, so every candidate
		// matches case-insensitively with dot spanning newlines.
		compiled = append(compiled, regexp.MustCompile(`(?is)`+expr))
	}
	return compiled
}

// extractionPatterns covers every field the analyzer knows how to pull
// out of MLS listing text. Candidate order within a field is a priority
// list: looser fallbacks sit last because they can latch onto unrelated
// numbers elsewhere in the sheet.
var extractionPatterns = []fieldPatterns{
	// Property identification and price
	{key: "mls_number", patterns: compileAll(
		`MLS#:\s*(\d+)`,
		`MLS:\s*(\d+)`,
		`(\d+)\n\s*MLS#:`,
	)},
	{key: "purchase_price", numeric: true, patterns: compileAll(
		`(?:List Price|LP|Price):\s*[\$£€]?([\d,\.]+)`,
		`Sale Price:\s*[\$£€]?([\d,\.]+)`,
		`Asking Price:\s*[\$£€]?([\d,\.]+)`,
		`Purchase Price:\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "property_type", patterns: compileAll(
		`(?:Prop Type|Property Type):\s*([A-Za-z\s]+)`,
		`Sub Type:\s*([A-Za-z\s]+)`,
	)},
	{key: "year_built", numeric: true, patterns: compileAll(
		`(?:Yr Built|Year Built):\s*(\d{4})`,
	)},
	{key: "number_of_units", numeric: true, patterns: compileAll(
		`(?:Number of Units|Units):\s*(\d+)`,
		`# of Units:\s*(\d+)`,
		`Unit Count:\s*(\d+)`,
		`(\d+)-plex`,
		`(\d+)\s*units`,
	)},
	{key: "monthly_rent_per_unit", numeric: true, patterns: compileAll(
		`(?:Monthly Rent Per Unit|Rent Per Unit):\s*[\$£€]?([\d,\.]+)`,
		`Monthly Rent:\s*[\$£€]?([\d,\.]+)`,
	)},

	// Operating expenses
	{key: "property_taxes", numeric: true, patterns: compileAll(
		`(?:Property Taxes|Tax Expense|Ann Taxes|Annual Taxes):\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "insurance", numeric: true, patterns: compileAll(
		`(?:Insurance|Annual Insurance):\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "property_management_fees", numeric: true, patterns: compileAll(
		`(?:Property Management Fees|Management Fees):\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "maintenance_repairs", numeric: true, patterns: compileAll(
		`(?:Maintenance and Repairs|Maintenance|Repairs):\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "utilities", numeric: true, patterns: compileAll(
		`(?:Utilities|Annual Utilities):\s*[\$£€]?([\d,\.]+)`,
	)},
	{key: "gross_scheduled_income", numeric: true, patterns: compileAll(
		`(?:Gross Scheduled Income|Gross Income|GSI):\s*[\$£€]?([\d,\.]+)`,
	)},

	// Financing terms (usually user input, occasionally on pro-forma sheets)
	{key: "vacancy_rate", numeric: true, patterns: compileAll(
		`Vacancy Rate:\s*([\d\.]+)\s*%`,
		`Vacancy:\s*([\d\.]+)\s*%`,
	)},
	{key: "down_payment", numeric: true, patterns: compileAll(
		`(?:Down Payment|DP):\s*([\d\.]+)\s*%`,
		`Down Payment Percentage:\s*([\d\.]+)\s*%`,
	)},
	{key: "interest_rate", numeric: true, patterns: compileAll(
		`(?:Interest Rate|Rate):\s*([\d\.]+)\s*%`,
	)},
	{key: "loan_terms_years", numeric: true, patterns: compileAll(
		`(?:Loan Terms|Loan Term|Term):\s*(\d+)\s*(?:years|yrs)`,
		`Loan Term \(Years\):\s*(\d+)`,
	)},

	// Descriptive details, extracted for display and record keeping
	{key: "total_beds", numeric: true, patterns: compileAll(
		`(?:Beds|Bedrooms|Ttl Beds):\s*(\d+)`,
	)},
	{key: "total_baths", numeric: true, patterns: compileAll(
		`(?:Baths|Bathrooms|Ttl Baths):\s*([\d\.]+)`,
	)},
	{key: "total_sqft", numeric: true, patterns: compileAll(
		`(?:Ttl Dwl SqFt|Approx Square Feet|SqFt|Total SqFt):\s*([\d,\.]+)\s*sf`,
		`Ttl Dwl SqFt:\s*([\d,\.]+)`,
		`(?:Approx Square Feet|SqFt|Total SqFt):\s*([\d,\.]+)`,
	)},
	{key: "lot_sf", numeric: true, patterns: compileAll(
		`(?:Lot SF|Lot Size):\s*([\d,\.]+)\s*sf`,
		`Lot SF \(approx\):\s*([\d,\.]+)\s*sf`,
	)},
	{key: "county", patterns: compileAll(
		`County:\s*([A-Za-z\s]+)`,
	)},
	{key: "community", patterns: compileAll(
		`Commty:\s*([A-Za-z\s]+)`,
		`Community:\s*([A-Za-z\s]+)`,
	)},
	{key: "style_code", patterns: compileAll(
		`Style Code:\s*([A-Za-z0-9\s-]+)`,
	)},
	{key: "exterior", patterns: compileAll(
		`Exterior:\s*([A-Za-z\s]+)`,
	)},
	{key: "roof", patterns: compileAll(
		`Roof:\s*([A-Za-z\s]+)`,
	)},
	{key: "heating", patterns: compileAll(
		`Heating:\s*([A-Za-z\s]+)`,
		`Energy Source\(heat\):\s*([A-Za-z\s]+)`,
	)},
	{key: "cooling", patterns: compileAll(
		`Cooling:\s*([A-Za-z\s]+)`,
	)},
	{key: "floor_covering", patterns: compileAll(
		`Floor Cvr:\s*([A-Za-z,\s]+)`,
		`Floor Covering:\s*([A-Za-z,\s]+)`,
	)},
	{key: "appliances", patterns: compileAll(
		`Appliances:\s*([A-Za-z\s,()]+)`,
	)},
	{key: "interior_features", patterns: compileAll(
		`Interior Ft:\s*([A-Za-z\s,()]+)`,
		`Interior Features\n\s*([A-Za-z\s,()]+)`,
	)},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractListingFields runs the candidate patterns for every known
// field against raw listing text and returns the sparse field-to-value
// map. The first candidate whose capture cleans to something non-empty
// wins per field; fields with no such match are simply absent. The
// function is pure: same text, same map.
func ExtractListingFields(text string) map[string]string {
	extracted := make(map[string]string)

	for _, fp := range extractionPatterns {
		for _, re := range fp.patterns {
			m := re.FindStringSubmatch(text)
			if len(m) < 2 {
				continue
			}
			value := cleanCapture(m[1], fp.numeric)
			if value == "" {
				// A match that cleans to nothing is no match; let a
				// later candidate have a go.
				continue
			}
			extracted[fp.key] = value
			break
		}
	}

	return extracted
}

// cleanCapture normalizes a raw capture: trim, collapse internal
// whitespace, drop stray quotes. Numeric captures additionally lose
// currency markers and thousands separators so "$1,500" comes out as
// "1500".
func cleanCapture(raw string, numeric bool) string {
	value := strings.TrimSpace(raw)
	value = whitespaceRun.ReplaceAllString(value, " ")
	value = strings.ReplaceAll(value, `"`, "")
	if numeric {
		value = strings.ReplaceAll(value, "$", "")
		value = strings.ReplaceAll(value, ",", "")
	}
	return strings.TrimSpace(value)
}
