package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	GPXDir         string
	BenchmarkCSV   string
	MigrationsPath string
	Workers        int
}

// Load reads configuration from the environment with sensible defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/analyses.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	gpxDir := os.Getenv("GPX_DIR")
	if gpxDir == "" {
		gpxDir = "./data/gpx"
	}

	benchmarkCSV := os.Getenv("BENCHMARK_CSV")
	if benchmarkCSV == "" {
		benchmarkCSV = "./data/benchmarks.csv"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	workers := 4
	if w := os.Getenv("WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		GPXDir:         gpxDir,
		BenchmarkCSV:   benchmarkCSV,
		MigrationsPath: migrationsPath,
		Workers:        workers,
	}
}
