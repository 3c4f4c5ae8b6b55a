// Package csvio persists the raw timetable as a CSV file on disk.
package csvio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/studyplan-api/internal/models"
)

// TimetableStore reads and writes the timetable CSV under a data directory.
type TimetableStore struct {
	path string
}

// NewTimetableStore ensures the data directory exists and returns a store
// bound to the given file name inside it.
func NewTimetableStore(dataDir, filename string) (*TimetableStore, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if filename == "" {
		filename = "courses.csv"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &TimetableStore{path: filepath.Join(dataDir, filename)}, nil
}

// Load parses the timetable file. A missing file is an empty timetable,
// not an error.
func (s *TimetableStore) Load() ([]models.TimetableRow, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.TimetableRow{}, nil
		}
		return nil, fmt.Errorf("open timetable file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	rows := []models.TimetableRow{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return []models.TimetableRow{}, nil
		}
		return nil, fmt.Errorf("parse timetable file: %w", err)
	}
	return rows, nil
}

// Save replaces the timetable file atomically via a temp-file rename.
func (s *TimetableStore) Save(rows []models.TimetableRow) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "timetable-*.csv")
	if err != nil {
		return fmt.Errorf("create temp timetable file: %w", err)
	}
	tmpName := tmp.Name()

	if err := gocsv.MarshalFile(&rows, tmp); err != nil {
		tmp.Close()          //nolint:errcheck
		os.Remove(tmpName)   //nolint:errcheck
		return fmt.Errorf("encode timetable file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("close temp timetable file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("replace timetable file: %w", err)
	}
	return nil
}

// Path returns the on-disk location of the timetable file.
func (s *TimetableStore) Path() string {
	return s.path
}
