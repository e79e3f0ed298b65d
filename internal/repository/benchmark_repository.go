package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/elevation-backend-go/internal/models"
)

// BenchmarkRepository handles database operations for benchmark entries
type BenchmarkRepository struct {
	db *sql.DB
}

// NewBenchmarkRepository creates a new benchmark repository
func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

// Replace upserts a batch of benchmark entries keyed by filename
func (r *BenchmarkRepository) Replace(entries []models.BenchmarkEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO benchmarks (filename, official_gain_m, source, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			official_gain_m = excluded.official_gain_m,
			source = excluded.source,
			notes = excluded.notes`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare benchmark upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Filename, e.OfficialGainM, e.Source, e.Notes); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert benchmark %s: %w", e.Filename, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit benchmark upsert: %w", err)
	}
	return nil
}

// GetByFilename retrieves a benchmark entry, nil when not found
func (r *BenchmarkRepository) GetByFilename(filename string) (*models.BenchmarkEntry, error) {
	query := "SELECT id, filename, official_gain_m, source, notes FROM benchmarks WHERE filename = ?"

	var e models.BenchmarkEntry
	err := r.db.QueryRow(query, filename).Scan(&e.ID, &e.Filename, &e.OfficialGainM, &e.Source, &e.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark: %w", err)
	}
	return &e, nil
}

// ListAll retrieves all benchmark entries ordered by filename
func (r *BenchmarkRepository) ListAll() ([]models.BenchmarkEntry, error) {
	rows, err := r.db.Query("SELECT id, filename, official_gain_m, source, notes FROM benchmarks ORDER BY filename")
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	defer rows.Close()

	var entries []models.BenchmarkEntry
	for rows.Next() {
		var e models.BenchmarkEntry
		if err := rows.Scan(&e.ID, &e.Filename, &e.OfficialGainM, &e.Source, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
