package dto

import "errors"

// AnalyzeRequest carries raw listing text for extraction and
// projection without persistence.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Validate performs basic validation on the request.
func (r *AnalyzeRequest) Validate() error {
	if r.Text == "" {
		return ErrEmptyListingText
	}
	return nil
}

// CalculateRequest carries field values (typically user-edited) for a
// projection pass against the current effective defaults.
type CalculateRequest struct {
	Inputs map[string]string `json:"inputs" binding:"required"`
}

// Validate performs basic validation on the request.
func (r *CalculateRequest) Validate() error {
	if len(r.Inputs) == 0 {
		return errors.New("inputs are required")
	}
	return nil
}

// SavePropertyRequest updates a stored property's user inputs; the
// financials are recalculated server-side before saving.
type SavePropertyRequest struct {
	FileName  string            `json:"file_name"`
	UserInput map[string]string `json:"user_input" binding:"required"`
}

// UpdateDefaultsRequest replaces values in the effective default set.
type UpdateDefaultsRequest struct {
	Defaults map[string]string `json:"defaults" binding:"required"`
}
