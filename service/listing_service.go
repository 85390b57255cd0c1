package service

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/propfolio/mls-deal-analyzer/config"
	"github.com/propfolio/mls-deal-analyzer/dto"
	"github.com/propfolio/mls-deal-analyzer/store"
	"github.com/propfolio/mls-deal-analyzer/utils"
)

// minEmbeddedTextLen is the threshold below which a PDF is treated as
// scanned and routed through the OCR fallback.
const minEmbeddedTextLen = 20

// OCRClient recognizes text in a page image and reports the mean word
// confidence. Satisfied by client.TesseractClient.
type OCRClient interface {
	ExtractTextAndQuality(filePath string) (string, float64, error)
}

type ListingService struct {
	tesseractClient OCRClient
	pdfProcessor    PDFProcessor
	store           *store.Store
}

func NewListingService(
	tesseractClient OCRClient,
	pdfProcessor PDFProcessor,
	store *store.Store,
) *ListingService {
	return &ListingService{
		tesseractClient: tesseractClient,
		pdfProcessor:    pdfProcessor,
		store:           store,
	}
}

// AnalyzeText runs the extraction-and-projection core over raw listing
// text: extract sparse fields, merge them over the effective defaults,
// validate, and compute the financial projections. Nothing is persisted.
func (s *ListingService) AnalyzeText(text string) *dto.AnalysisResponse {
	extracted := utils.ExtractListingFields(text)
	defaults := s.EffectiveDefaults()
	inputs := mergeInputs(extracted, defaults)

	financials, err := CalculateProjections(currentValues(inputs), defaults)
	if err != nil {
		// The engine already reset every output; surface one diagnostic.
		log.Printf("Projection pass error: %v", err)
	}

	return &dto.AnalysisResponse{
		Extracted:   extracted,
		Inputs:      inputs,
		Financials:  financials,
		Warnings:    nonEmpty(utils.ValidateFields(extracted)),
		ProcessedAt: time.Now().Format(time.RFC3339),
	}
}

// AnalyzePDF extracts text from an uploaded listing PDF (falling back
// to OCR for scanned sheets), runs the core analysis, and persists the
// result as a new property record.
func (s *ListingService) AnalyzePDF(fileHeader *multipart.FileHeader) (*dto.AnalysisResponse, error) {
	if err := s.pdfProcessor.ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	pdfData, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}

	text, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", fileHeader.Filename, err)
	}

	var listingURL string
	var ocrConfidence float64
	if len(strings.TrimSpace(text)) < minEmbeddedTextLen {
		log.Printf("PDF %s has minimal embedded text, attempting image-based OCR", fileHeader.Filename)

		images, imgErr := s.pdfProcessor.ExtractImages(pdfData)
		if imgErr != nil || len(images) == 0 {
			log.Printf("Failed to extract images from PDF %s: %v", fileHeader.Filename, imgErr)
		} else {
			listingURL = decodeListingURL(images)

			ocrText, confidence, ocrErr := s.ocrImages(images)
			if ocrErr != nil {
				log.Printf("OCR fallback failed for %s: %v", fileHeader.Filename, ocrErr)
			} else {
				text = ocrText
				ocrConfidence = confidence
			}
		}
	}

	if len(strings.TrimSpace(text)) == 0 {
		return nil, fmt.Errorf("no text could be extracted from %s", fileHeader.Filename)
	}

	result := s.AnalyzeText(text)
	result.FileName = fileHeader.Filename
	result.ListingURL = listingURL
	result.OCRConfidence = ocrConfidence

	if s.store != nil {
		id, err := s.store.InsertProperty(&dto.PropertyRecord{
			FileName:          fileHeader.Filename,
			RawTextPreview:    preview(text, 2000),
			OriginalExtracted: result.Extracted,
			UserInput:         currentValues(result.Inputs),
			Calculated:        result.Financials.Map(),
		})
		if err != nil {
			// Re-uploading the same sheet is common; the analysis is
			// still returned, just not saved twice.
			log.Printf("Skipping persistence for %s: %v", fileHeader.Filename, err)
		} else {
			result.PropertyID = id
		}
	}

	return result, nil
}

// Recalculate runs one projection pass over user-supplied field values
// against the current effective defaults.
func (s *ListingService) Recalculate(inputs map[string]string) *dto.CalculationResponse {
	defaults := s.EffectiveDefaults()

	financials, err := CalculateProjections(inputs, defaults)
	if err != nil {
		log.Printf("Projection pass error: %v", err)
	}

	merged := make(map[string]dto.FieldValue, len(config.FieldOrder))
	for _, field := range config.FieldOrder {
		if value, ok := inputs[field.Key]; ok && value != "" {
			merged[field.Key] = dto.FieldValue{Value: value, Source: dto.SourceManual}
		} else {
			merged[field.Key] = dto.FieldValue{Value: defaults[field.Key], Source: dto.SourceDefault}
		}
	}

	return &dto.CalculationResponse{
		Inputs:     merged,
		Financials: financials,
		Warnings:   nonEmpty(utils.ValidateFields(inputs)),
	}
}

// SaveProperty replaces a stored record's user inputs, recalculating
// the financials against the current defaults before writing.
func (s *ListingService) SaveProperty(id int64, fileName string, userInput map[string]string) (*dto.PropertyRecord, error) {
	if errs := utils.ValidateFields(userInput); len(errs) > 0 {
		for field, msg := range errs {
			return nil, fmt.Errorf("invalid %s: %s", field, msg)
		}
	}

	financials, err := CalculateProjections(userInput, s.EffectiveDefaults())
	if err != nil {
		log.Printf("Projection pass error while saving property %d: %v", id, err)
	}

	rec, err := s.store.GetProperty(id)
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		fileName = rec.FileName
	}

	if err := s.store.UpdateProperty(id, fileName, userInput, financials.Map()); err != nil {
		return nil, err
	}
	return s.store.GetProperty(id)
}

// Properties lists saved record summaries.
func (s *ListingService) Properties() ([]dto.PropertySummary, error) {
	return s.store.ListProperties()
}

// Property fetches one saved record.
func (s *ListingService) Property(id int64) (*dto.PropertyRecord, error) {
	return s.store.GetProperty(id)
}

// DeleteProperty removes a saved record.
func (s *ListingService) DeleteProperty(id int64) error {
	return s.store.DeleteProperty(id)
}

// EffectiveDefaults overlays user-edited defaults on the shipped
// baseline. This is the only default set the projection engine ever
// sees.
func (s *ListingService) EffectiveDefaults() map[string]string {
	effective := make(map[string]string, len(config.DefaultValues))
	for key, value := range config.DefaultValues {
		effective[key] = value
	}

	if s.store == nil {
		return effective
	}
	saved, err := s.store.GetDefaults()
	if err != nil {
		log.Printf("Failed to load saved defaults, using baseline: %v", err)
		return effective
	}
	for key, value := range saved {
		effective[key] = value
	}
	return effective
}

// UpdateDefaults validates and persists default overrides.
func (s *ListingService) UpdateDefaults(updates map[string]string) error {
	if errs := utils.ValidateFields(updates); len(errs) > 0 {
		for field, msg := range errs {
			return fmt.Errorf("invalid default for %s: %s", field, msg)
		}
	}
	for key, value := range updates {
		if err := s.store.SetDefault(key, value); err != nil {
			return fmt.Errorf("failed to save default %s: %w", key, err)
		}
	}
	return nil
}

// ocrImages OCRs each page image and concatenates the recognized text
// with page breaks. The second return is the mean word confidence
// across the pages that OCR'd successfully.
func (s *ListingService) ocrImages(images []image.Image) (string, float64, error) {
	var combined strings.Builder
	var totalConfidence float64
	var pages int

	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, confidence, err := s.tesseractClient.ExtractTextAndQuality(tempImgFile)
		os.Remove(tempImgFile)
		if err != nil {
			log.Printf("OCR failed for a page: %v", err)
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
		totalConfidence += confidence
		pages++
	}

	if pages == 0 {
		return "", 0, fmt.Errorf("no pages could be OCR'd")
	}
	return combined.String(), totalConfidence / float64(pages), nil
}

// decodeListingURL scans page images for a QR code and returns its
// payload when it looks like a listing link. Flyer QR codes are a
// bonus, so failures are silent.
func decodeListingURL(images []image.Image) string {
	reader := qrcode.NewQRCodeReader()
	for _, img := range images {
		bmp, err := gozxing.NewBinaryBitmapFromImage(img)
		if err != nil {
			continue
		}
		result, err := reader.Decode(bmp, nil)
		if err != nil {
			continue
		}
		payload := strings.TrimSpace(result.GetText())
		if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
			return payload
		}
	}
	return ""
}

// mergeInputs builds the per-calculation input view: extracted value
// when present, effective default otherwise, each tagged with its
// source. The tag is for callers only; the engine never sees it.
func mergeInputs(extracted, defaults map[string]string) map[string]dto.FieldValue {
	merged := make(map[string]dto.FieldValue, len(config.FieldOrder))
	for _, field := range config.FieldOrder {
		if value, ok := extracted[field.Key]; ok && value != "" {
			merged[field.Key] = dto.FieldValue{Value: value, Source: dto.SourceExtracted}
		} else {
			merged[field.Key] = dto.FieldValue{Value: defaults[field.Key], Source: dto.SourceDefault}
		}
	}
	return merged
}

func currentValues(inputs map[string]dto.FieldValue) map[string]string {
	values := make(map[string]string, len(inputs))
	for key, fv := range inputs {
		values[key] = fv.Value
	}
	return values
}

func nonEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

// preview truncates to at most max bytes without splitting a UTF-8
// rune at the boundary.
func preview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "mls-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
