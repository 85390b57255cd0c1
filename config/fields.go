package config

// Field holds a display label and the key the extractor and projection
// engine use for it. Order matters only for display.
type Field struct {
	Label string
	Key   string
}

// FieldOrder lists every user-editable input field in display order.
var FieldOrder = []Field{
	{"Number of Units", "number_of_units"},
	{"Monthly Rent per Unit ($)", "monthly_rent_per_unit"},
	{"Vacancy Rate (%)", "vacancy_rate"},
	{"Property Taxes ($)", "property_taxes"},
	{"Insurance ($)", "insurance"},
	{"Property Management Fees ($)", "property_management_fees"},
	{"Maintenance and Repairs ($)", "maintenance_repairs"},
	{"Utilities ($)", "utilities"},
	{"Purchase Price ($)", "purchase_price"},
	{"Down Payment (%)", "down_payment"},
	{"Interest Rate (%)", "interest_rate"},
	{"Loan Terms (Years)", "loan_terms_years"},
	{"Gross Scheduled Income ($)", "gross_scheduled_income"},
}

// Type partitions used by validation and input parsing.
var (
	NumericFields = []string{
		"monthly_rent_per_unit", "property_taxes", "insurance",
		"property_management_fees", "maintenance_repairs", "utilities",
		"purchase_price", "gross_scheduled_income",
	}

	PercentageFields = []string{"vacancy_rate", "interest_rate", "down_payment"}

	IntegerFields = []string{"number_of_units", "loan_terms_years"}
)

// DefaultValues is the shipped baseline default set (King County WA
// averages). Users edit their own copy through the defaults store; this
// table only seeds it.
var DefaultValues = map[string]string{
	"number_of_units":          "1",
	"monthly_rent_per_unit":    "1500.00",
	"vacancy_rate":             "3.0",
	"property_taxes":           "",
	"insurance":                "2000.00",
	"property_management_fees": "4800.00",
	"maintenance_repairs":      "8000.00",
	"utilities":                "2400.00",
	"purchase_price":           "",
	"down_payment":             "20.0",
	"interest_rate":            "6.5",
	"loan_terms_years":         "30",
	"gross_scheduled_income":   "0",
}

// IsNumericField reports whether key is a currency-like field.
func IsNumericField(key string) bool { return contains(NumericFields, key) }

// IsPercentageField reports whether key holds a 0-100 percentage.
func IsPercentageField(key string) bool { return contains(PercentageFields, key) }

// IsIntegerField reports whether key holds a whole number.
func IsIntegerField(key string) bool { return contains(IntegerFields, key) }

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
