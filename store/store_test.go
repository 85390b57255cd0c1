package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfolio/mls-deal-analyzer/dto"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord() *dto.PropertyRecord {
	return &dto.PropertyRecord{
		FileName:       "listing_2214307.pdf",
		RawTextPreview: "Units: 3\nList Price: $300,000",
		OriginalExtracted: map[string]string{
			"number_of_units": "3",
			"purchase_price":  "300000",
		},
		UserInput: map[string]string{
			"number_of_units": "3",
			"purchase_price":  "300000",
			"interest_rate":   "6.5",
		},
		Calculated: map[string]string{
			"gpi": "$54,000.00",
			"grm": "5.56",
		},
	}
}

func TestInsertAndGetProperty(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertProperty(sampleRecord())
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	rec, err := s.GetProperty(id)
	require.NoError(t, err)
	assert.Equal(t, "listing_2214307.pdf", rec.FileName)
	assert.Equal(t, "3", rec.OriginalExtracted["number_of_units"])
	assert.Equal(t, "6.5", rec.UserInput["interest_rate"])
	assert.Equal(t, "$54,000.00", rec.Calculated["gpi"])
	assert.NotEmpty(t, rec.ExtractionDate)
}

func TestInsertDuplicateFileName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertProperty(sampleRecord())
	require.NoError(t, err)

	_, err = s.InsertProperty(sampleRecord())
	assert.Error(t, err)
}

func TestUpdatePropertyPreservesOriginalExtraction(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertProperty(sampleRecord())
	require.NoError(t, err)

	err = s.UpdateProperty(id, "listing_2214307.pdf",
		map[string]string{"number_of_units": "4"},
		map[string]string{"gpi": "$72,000.00"})
	require.NoError(t, err)

	rec, err := s.GetProperty(id)
	require.NoError(t, err)
	assert.Equal(t, "4", rec.UserInput["number_of_units"])
	assert.Equal(t, "$72,000.00", rec.Calculated["gpi"])
	// The snapshot off the PDF never changes.
	assert.Equal(t, "3", rec.OriginalExtracted["number_of_units"])
}

func TestUpdateMissingProperty(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateProperty(99, "x.pdf", nil, nil)
	assert.ErrorIs(t, err, dto.ErrPropertyNotFound)
}

func TestListProperties(t *testing.T) {
	s := newTestStore(t)

	first := sampleRecord()
	second := sampleRecord()
	second.FileName = "listing_other.pdf"

	_, err := s.InsertProperty(first)
	require.NoError(t, err)
	_, err = s.InsertProperty(second)
	require.NoError(t, err)

	summaries, err := s.ListProperties()
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestDeleteProperty(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertProperty(sampleRecord())
	require.NoError(t, err)

	require.NoError(t, s.DeleteProperty(id))

	_, err = s.GetProperty(id)
	assert.ErrorIs(t, err, dto.ErrPropertyNotFound)

	assert.ErrorIs(t, s.DeleteProperty(id), dto.ErrPropertyNotFound)
}

func TestDefaultsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	defaults, err := s.GetDefaults()
	require.NoError(t, err)
	assert.Empty(t, defaults)

	require.NoError(t, s.SetDefault("vacancy_rate", "5.0"))
	require.NoError(t, s.SetDefault("vacancy_rate", "4.0")) // last writer wins
	require.NoError(t, s.SetDefault("insurance", "2500.00"))

	defaults, err = s.GetDefaults()
	require.NoError(t, err)
	assert.Equal(t, "4.0", defaults["vacancy_rate"])
	assert.Equal(t, "2500.00", defaults["insurance"])
}
