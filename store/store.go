package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/propfolio/mls-deal-analyzer/dto"
)

// Store is the SQLite persistence layer for analyzed properties and the
// user-editable default set. Semantics are last-writer-wins; the
// calculation core never touches this layer directly.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite works best with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL UNIQUE,
			original_file_path TEXT,
			extraction_date TEXT,
			raw_text_preview TEXT,
			original_extracted_json TEXT,
			user_input_json TEXT,
			calculated_json TEXT
		);
		CREATE TABLE IF NOT EXISTS defaults (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT
		);
	`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InsertProperty stores a freshly analyzed listing and returns its ID.
// The original extracted snapshot is written once here and never
// touched by later updates.
func (s *Store) InsertProperty(rec *dto.PropertyRecord) (int64, error) {
	originalJSON, err := json.Marshal(rec.OriginalExtracted)
	if err != nil {
		return 0, fmt.Errorf("failed to encode extracted data: %w", err)
	}
	userJSON, err := json.Marshal(rec.UserInput)
	if err != nil {
		return 0, fmt.Errorf("failed to encode user input: %w", err)
	}
	calcJSON, err := json.Marshal(rec.Calculated)
	if err != nil {
		return 0, fmt.Errorf("failed to encode financials: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO properties (file_name, original_file_path, extraction_date, raw_text_preview,
			original_extracted_json, user_input_json, calculated_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.FileName, rec.OriginalFilePath, time.Now().Format(time.RFC3339), rec.RawTextPreview,
		string(originalJSON), string(userJSON), string(calcJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert property %s: %w", rec.FileName, err)
	}
	return res.LastInsertId()
}

// UpdateProperty replaces a record's user inputs and financials. The
// original extracted data is deliberately left alone so edits can
// always be compared against what came off the PDF.
func (s *Store) UpdateProperty(id int64, fileName string, userInput, calculated map[string]string) error {
	userJSON, err := json.Marshal(userInput)
	if err != nil {
		return fmt.Errorf("failed to encode user input: %w", err)
	}
	calcJSON, err := json.Marshal(calculated)
	if err != nil {
		return fmt.Errorf("failed to encode financials: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE properties SET file_name = ?, user_input_json = ?, calculated_json = ? WHERE id = ?
	`, fileName, string(userJSON), string(calcJSON), id)
	if err != nil {
		return fmt.Errorf("failed to update property %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dto.ErrPropertyNotFound
	}
	return nil
}

// ListProperties returns summaries of all saved records, newest first.
func (s *Store) ListProperties() ([]dto.PropertySummary, error) {
	rows, err := s.db.Query(`
		SELECT id, file_name, extraction_date FROM properties ORDER BY extraction_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var summaries []dto.PropertySummary
	for rows.Next() {
		var sum dto.PropertySummary
		if err := rows.Scan(&sum.ID, &sum.FileName, &sum.ExtractionDate); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetProperty fetches a full record by ID.
func (s *Store) GetProperty(id int64) (*dto.PropertyRecord, error) {
	var rec dto.PropertyRecord
	var filePath, rawText sql.NullString
	var originalJSON, userJSON, calcJSON sql.NullString

	err := s.db.QueryRow(`
		SELECT id, file_name, original_file_path, extraction_date, raw_text_preview,
			original_extracted_json, user_input_json, calculated_json
		FROM properties WHERE id = ?
	`, id).Scan(&rec.ID, &rec.FileName, &filePath, &rec.ExtractionDate, &rawText,
		&originalJSON, &userJSON, &calcJSON)
	if err == sql.ErrNoRows {
		return nil, dto.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property %d: %w", id, err)
	}

	rec.OriginalFilePath = filePath.String
	rec.RawTextPreview = rawText.String
	rec.OriginalExtracted = decodeStringMap(originalJSON.String)
	rec.UserInput = decodeStringMap(userJSON.String)
	rec.Calculated = decodeStringMap(calcJSON.String)
	return &rec, nil
}

// DeleteProperty removes a record by ID.
func (s *Store) DeleteProperty(id int64) error {
	res, err := s.db.Exec("DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dto.ErrPropertyNotFound
	}
	return nil
}

// GetDefaults returns the persisted default overrides. Callers overlay
// these on the shipped baseline to produce the effective default set.
func (s *Store) GetDefaults() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM defaults")
	if err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	defer rows.Close()

	defaults := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		defaults[key] = value
	}
	return defaults, rows.Err()
}

// SetDefault upserts one default value, last-writer-wins.
func (s *Store) SetDefault(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO defaults (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().Format(time.RFC3339))
	return err
}

// decodeStringMap tolerates legacy or hand-edited rows: bad JSON comes
// back as an empty map rather than failing the whole read.
func decodeStringMap(raw string) map[string]string {
	m := make(map[string]string)
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return make(map[string]string)
	}
	return m
}
