package dto

import "errors"

// Custom errors
var (
	ErrEmptyListingText = errors.New("listing text is required")
	ErrPropertyNotFound = errors.New("property not found")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AnalysisResponse is returned by the extract and analyze endpoints.
type AnalysisResponse struct {
	PropertyID int64  `json:"property_id,omitempty"`
	FileName   string `json:"file_name,omitempty"`
	ListingURL string `json:"listing_url,omitempty"`
	// Mean OCR word confidence, set only on the scanned-sheet path.
	OCRConfidence float64               `json:"ocr_confidence,omitempty"`
	Extracted     map[string]string     `json:"extracted"`
	Inputs        map[string]FieldValue `json:"inputs"`
	Financials    CalculatedFinancials  `json:"financials"`
	Warnings      map[string]string     `json:"warnings,omitempty"`
	ProcessedAt   string                `json:"processed_at"`
}

// CalculationResponse is returned by the calculate endpoint.
type CalculationResponse struct {
	Inputs     map[string]FieldValue `json:"inputs"`
	Financials CalculatedFinancials  `json:"financials"`
	Warnings   map[string]string     `json:"warnings,omitempty"`
}

// DefaultsResponse exposes the effective default set.
type DefaultsResponse struct {
	Defaults map[string]string `json:"defaults"`
}
