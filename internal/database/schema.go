package database

import (
	"database/sql"
	"fmt"
)

// baseSchema mirrors migrations/001_init.sql for callers that run without a
// migrations directory, such as the CLI with an in-memory database.
const baseSchema = `
CREATE TABLE IF NOT EXISTS analyses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL DEFAULT '',
    variant TEXT NOT NULL,
    terrain TEXT NOT NULL,
    gain_per_km REAL NOT NULL,
    interval_m REAL NOT NULL,
    deadband_m REAL NOT NULL,
    total_ascent_m REAL NOT NULL,
    total_descent_m REAL NOT NULL,
    raw_gain_m REAL NOT NULL,
    raw_loss_m REAL NOT NULL,
    point_count INTEGER NOT NULL,
    total_distance_m REAL NOT NULL,
    passes INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_filename ON analyses(filename);
CREATE INDEX IF NOT EXISTS idx_analyses_variant ON analyses(variant);
CREATE INDEX IF NOT EXISTS idx_analyses_terrain ON analyses(terrain);

CREATE TABLE IF NOT EXISTS benchmarks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL UNIQUE,
    official_gain_m REAL NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema creates the core tables when they do not exist yet
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
