package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jengzang/elevation-backend-go/internal/models"
)

// Load reads a benchmark CSV with columns
// filename,official_elevation_gain_m,source,notes. A header row is detected
// and skipped, rows with an unparseable gain are rejected.
func Load(r io.Reader) ([]models.BenchmarkEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []models.BenchmarkEntry
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read benchmark csv: %w", err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("benchmark csv line %d: expected at least 2 columns, got %d", line, len(record))
		}

		filename := strings.TrimSpace(record[0])
		gainField := strings.TrimSpace(record[1])

		if line == 1 && isHeader(gainField) {
			continue
		}
		if filename == "" {
			continue
		}

		gain, err := strconv.ParseFloat(gainField, 64)
		if err != nil {
			return nil, fmt.Errorf("benchmark csv line %d: invalid gain %q: %w", line, gainField, err)
		}

		entry := models.BenchmarkEntry{
			Filename:      filename,
			OfficialGainM: gain,
		}
		if len(record) > 2 {
			entry.Source = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			entry.Notes = strings.TrimSpace(record[3])
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LoadFile reads a benchmark CSV from disk.
func LoadFile(path string) ([]models.BenchmarkEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open benchmark csv: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func isHeader(gainField string) bool {
	_, err := strconv.ParseFloat(gainField, 64)
	return err != nil
}

// Table indexes benchmark entries by filename.
type Table map[string]models.BenchmarkEntry

// NewTable builds a lookup table, later duplicates win.
func NewTable(entries []models.BenchmarkEntry) Table {
	t := make(Table, len(entries))
	for _, e := range entries {
		t[e.Filename] = e
	}
	return t
}

// Lookup returns the entry for a filename.
func (t Table) Lookup(filename string) (models.BenchmarkEntry, bool) {
	e, ok := t[filename]
	return e, ok
}
