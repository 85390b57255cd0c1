package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// pdfcpu writes page images out as PNG, JPEG, or TIFF depending on
	// the source filter; scanned sheets are almost always DCT (JPEG).
	_ "image/jpeg"
	_ "image/png"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/tiff"
)

const maxUploadSizeMB = 50

type PDFProcessor interface {
	ValidateUpload(filename string, size int64) error
	ExtractText(pdfData []byte) (string, error)
	ExtractImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ValidateUpload rejects non-PDF uploads and oversized files before any
// parsing happens.
func (p *pdfProcessor) ValidateUpload(filename string, size int64) error {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pdf" {
		return fmt.Errorf("unsupported file format: %s", ext)
	}
	if sizeMB := float64(size) / (1024 * 1024); sizeMB > maxUploadSizeMB {
		return fmt.Errorf("file too large: %.1fMB (max: %dMB)", sizeMB, maxUploadSizeMB)
	}
	return nil
}

// ExtractText pulls the embedded text layer out of a listing PDF,
// page by page, preserving row breaks so labeled values stay on their
// own lines for the extractor.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractImages pulls embedded page images out of a PDF. Scanned
// listing sheets have no text layer, so these feed the OCR fallback;
// they are also scanned for listing-link QR codes.
func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "mls_pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "listing-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	return decodeImageDir(tempDir)
}

// decodeImageDir decodes every image file in dir, skipping anything the
// registered decoders cannot read.
func decodeImageDir(dir string) ([]image.Image, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(dir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
