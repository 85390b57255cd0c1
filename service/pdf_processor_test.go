package service

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 4, 4)), nil))
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 4, 4))))
}

// Scanned listing sheets come out of pdfcpu as DCT (JPEG) page images,
// so the decode step must handle them alongside PNG.
func TestDecodeImageDirReadsJPEGPages(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "page_1_Im0.jpg"))
	writePNG(t, filepath.Join(dir, "page_2_Im0.png"))

	images, err := decodeImageDir(dir)
	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestDecodeImageDirSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "page_1_Im0.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644))

	images, err := decodeImageDir(dir)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestValidateUpload(t *testing.T) {
	p := NewPDFProcessor()

	assert.NoError(t, p.ValidateUpload("listing.pdf", 1024))
	assert.Error(t, p.ValidateUpload("listing.docx", 1024))
	assert.Error(t, p.ValidateUpload("listing.pdf", 51*1024*1024))
}
