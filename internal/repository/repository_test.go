package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jengzang/elevation-backend-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE analyses (
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
	CREATE TABLE benchmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		official_gain_m REAL NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

func sampleAnalysis(filename string) *models.Analysis {
	return &models.Analysis{
		Filename:       filename,
		Variant:        "symmetric",
		Terrain:        "Hilly",
		GainPerKm:      45.2,
		IntervalM:      10,
		DeadbandM:      2.0,
		TotalAscentM:   452.0,
		TotalDescentM:  448.5,
		RawGainM:       610.0,
		RawLossM:       605.0,
		PointCount:     1500,
		TotalDistanceM: 10000,
		Passes:         1,
	}
}

func TestAnalysisRepositoryCreateAndGet(t *testing.T) {
	t.Parallel()

	repo := NewAnalysisRepository(openTestDB(t))

	a := sampleAnalysis("ride.gpx")
	require.NoError(t, repo.Create(a))
	assert.Positive(t, a.ID)

	got, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ride.gpx", got.Filename)
	assert.InDelta(t, 452.0, got.TotalAscentM, 1e-9)
	assert.Equal(t, "symmetric", got.Variant)

	missing, err := repo.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAnalysisRepositoryList(t *testing.T) {
	t.Parallel()

	repo := NewAnalysisRepository(openTestDB(t))

	first := sampleAnalysis("a.gpx")
	require.NoError(t, repo.Create(first))
	second := sampleAnalysis("b.gpx")
	second.Variant = "adaptive"
	require.NoError(t, repo.Create(second))

	all, total, err := repo.List(models.AnalysisFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	adaptive, total, err := repo.List(models.AnalysisFilter{Variant: "adaptive"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, adaptive, 1)
	assert.Equal(t, "b.gpx", adaptive[0].Filename)
}

func TestBenchmarkRepositoryReplace(t *testing.T) {
	t.Parallel()

	repo := NewBenchmarkRepository(openTestDB(t))

	entries := []models.BenchmarkEntry{
		{Filename: "a.gpx", OfficialGainM: 100, Source: "organizer"},
		{Filename: "b.gpx", OfficialGainM: 200},
	}
	require.NoError(t, repo.Replace(entries))

	// Upsert overwrites by filename.
	require.NoError(t, repo.Replace([]models.BenchmarkEntry{
		{Filename: "a.gpx", OfficialGainM: 150, Source: "garmin"},
	}))

	got, err := repo.GetByFilename("a.gpx")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 150.0, got.OfficialGainM, 1e-9)
	assert.Equal(t, "garmin", got.Source)

	all, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	missing, err := repo.GetByFilename("nope.gpx")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
