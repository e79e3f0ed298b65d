package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/elevation-backend-go/internal/models"
)

// AnalysisRepository handles database operations for analysis results
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts an analysis result and sets its ID
func (r *AnalysisRepository) Create(a *models.Analysis) error {
	query := `INSERT INTO analyses
		(filename, variant, terrain, gain_per_km, interval_m, deadband_m,
		 total_ascent_m, total_descent_m, raw_gain_m, raw_loss_m,
		 point_count, total_distance_m, passes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		a.Filename, a.Variant, a.Terrain, a.GainPerKm, a.IntervalM, a.DeadbandM,
		a.TotalAscentM, a.TotalDescentM, a.RawGainM, a.RawLossM,
		a.PointCount, a.TotalDistanceM, a.Passes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get analysis id: %w", err)
	}
	a.ID = id
	return nil
}

// GetByID retrieves a single analysis by ID, nil when not found
func (r *AnalysisRepository) GetByID(id int64) (*models.Analysis, error) {
	query := `SELECT id, filename, variant, terrain, gain_per_km, interval_m, deadband_m,
		total_ascent_m, total_descent_m, raw_gain_m, raw_loss_m,
		point_count, total_distance_m, passes, created_at
		FROM analyses WHERE id = ?`

	var a models.Analysis
	err := r.db.QueryRow(query, id).Scan(
		&a.ID, &a.Filename, &a.Variant, &a.Terrain, &a.GainPerKm, &a.IntervalM, &a.DeadbandM,
		&a.TotalAscentM, &a.TotalDescentM, &a.RawGainM, &a.RawLossM,
		&a.PointCount, &a.TotalDistanceM, &a.Passes, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	return &a, nil
}

// List retrieves analyses with filtering and pagination
func (r *AnalysisRepository) List(filter models.AnalysisFilter) ([]models.Analysis, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.Variant != "" {
		conditions = append(conditions, "variant = ?")
		args = append(args, filter.Variant)
	}
	if filter.Terrain != "" {
		conditions = append(conditions, "terrain = ?")
		args = append(args, filter.Terrain)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM analyses"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT id, filename, variant, terrain, gain_per_km, interval_m, deadband_m,
		total_ascent_m, total_descent_m, raw_gain_m, raw_loss_m,
		point_count, total_distance_m, passes, created_at
		FROM analyses` + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		err := rows.Scan(
			&a.ID, &a.Filename, &a.Variant, &a.Terrain, &a.GainPerKm, &a.IntervalM, &a.DeadbandM,
			&a.TotalAscentM, &a.TotalDescentM, &a.RawGainM, &a.RawLossM,
			&a.PointCount, &a.TotalDistanceM, &a.Passes, &a.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	return analyses, total, nil
}
