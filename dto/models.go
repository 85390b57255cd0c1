package dto

// ValueSource tags where a field value came from. It drives UI
// coloring on the client side only; nothing in the calculation path
// branches on it.
type ValueSource string

const (
	SourceDefault   ValueSource = "default"
	SourceManual    ValueSource = "manual"
	SourceExtracted ValueSource = "extracted"
)

// FieldValue is one merged input field as reported to callers.
type FieldValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
}

// CalculatedFinancials holds the ten projection outputs. Every field is
// always set: either a formatted value or an "N/A (...)" reason string.
type CalculatedFinancials struct {
	GPI         string `json:"gpi"`
	VC          string `json:"vc"`
	EGI         string `json:"egi"`
	NOI         string `json:"noi"`
	CapRate     string `json:"cap_rate"`
	DebtService string `json:"debt_service"`
	CFBT        string `json:"cfbt"`
	CoCReturn   string `json:"coc_return"`
	GRM         string `json:"grm"`
	DSCR        string `json:"dscr"`
}

// NotAvailable is the generic reset state for a metric.
const NotAvailable = "N/A"

// NewNAFinancials returns a result set with every metric reset.
func NewNAFinancials() CalculatedFinancials {
	return CalculatedFinancials{
		GPI:         NotAvailable,
		VC:          NotAvailable,
		EGI:         NotAvailable,
		NOI:         NotAvailable,
		CapRate:     NotAvailable,
		DebtService: NotAvailable,
		CFBT:        NotAvailable,
		CoCReturn:   NotAvailable,
		GRM:         NotAvailable,
		DSCR:        NotAvailable,
	}
}

// Map returns the outputs keyed the way the store and API expose them.
func (c CalculatedFinancials) Map() map[string]string {
	return map[string]string{
		"gpi":          c.GPI,
		"vc":           c.VC,
		"egi":          c.EGI,
		"noi":          c.NOI,
		"cap_rate":     c.CapRate,
		"debt_service": c.DebtService,
		"cfbt":         c.CFBT,
		"coc_return":   c.CoCReturn,
		"grm":          c.GRM,
		"dscr":         c.DSCR,
	}
}

// PropertyRecord is a persisted listing analysis.
type PropertyRecord struct {
	ID                int64             `json:"id"`
	FileName          string            `json:"file_name"`
	OriginalFilePath  string            `json:"original_file_path,omitempty"`
	ExtractionDate    string            `json:"extraction_date"`
	RawTextPreview    string            `json:"raw_text_preview,omitempty"`
	OriginalExtracted map[string]string `json:"original_extracted_data"`
	UserInput         map[string]string `json:"user_input_data"`
	Calculated        map[string]string `json:"calculated_financials"`
}

// PropertySummary is the list-view projection of a record.
type PropertySummary struct {
	ID             int64  `json:"id"`
	FileName       string `json:"file_name"`
	ExtractionDate string `json:"extraction_date"`
}
