package service

import (
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"sync"

	"github.com/jengzang/elevation-backend-go/internal/benchmark"
	"github.com/jengzang/elevation-backend-go/internal/elevation"
	"github.com/jengzang/elevation-backend-go/internal/gpx"
	"github.com/jengzang/elevation-backend-go/internal/models"
	"github.com/jengzang/elevation-backend-go/internal/report"
	"github.com/jengzang/elevation-backend-go/internal/repository"
	"github.com/jengzang/elevation-backend-go/internal/spatial"
)

// AnalysisService handles business logic for elevation analyses
type AnalysisService struct {
	analysisRepo  *repository.AnalysisRepository
	benchmarkRepo *repository.BenchmarkRepository
	gpxDir        string
	workers       int
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(analysisRepo *repository.AnalysisRepository, benchmarkRepo *repository.BenchmarkRepository, gpxDir string, workers int) *AnalysisService {
	if workers < 1 {
		workers = 1
	}
	return &AnalysisService{
		analysisRepo:  analysisRepo,
		benchmarkRepo: benchmarkRepo,
		gpxDir:        gpxDir,
		workers:       workers,
	}
}

// AnalyzeTrace processes a raw distance/elevation trace and persists the result
func (s *AnalysisService) AnalyzeTrace(req models.AnalysisRequest) (*models.Analysis, error) {
	variant, err := parseVariant(req.Variant)
	if err != nil {
		return nil, err
	}
	if len(req.Distances) != len(req.Elevations) {
		return nil, fmt.Errorf("trace length mismatch: %d distances vs %d elevations", len(req.Distances), len(req.Elevations))
	}
	if len(req.Distances) == 0 {
		return nil, fmt.Errorf("empty trace")
	}
	if err := validateFinite(req.Distances, req.Elevations); err != nil {
		return nil, err
	}

	analysis, err := s.analyze("", req.Distances, req.Elevations, variant, req.IntervalM, req.DeadbandM)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// AnalyzeGPX parses a GPX file from the configured directory and analyzes it
func (s *AnalysisService) AnalyzeGPX(req models.GPXAnalysisRequest) (*models.Analysis, error) {
	variant, err := parseVariant(req.Variant)
	if err != nil {
		return nil, err
	}

	// Strip any path components so requests cannot escape the GPX directory.
	filename := filepath.Base(req.Filename)
	track, err := gpx.ParseFile(filepath.Join(s.gpxDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}

	return s.analyzeTrack(filename, track, variant, req.IntervalM, req.DeadbandM)
}

// AnalyzeGPXUpload parses GPX content from a stream, for uploaded files that
// never touch the GPX directory.
func (s *AnalysisService) AnalyzeGPXUpload(filename string, r io.Reader, variantName string, intervalM, deadbandM float64) (*models.Analysis, error) {
	variant, err := parseVariant(variantName)
	if err != nil {
		return nil, err
	}

	track, err := gpx.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload %s: %w", filename, err)
	}

	return s.analyzeTrack(filepath.Base(filename), track, variant, intervalM, deadbandM)
}

func (s *AnalysisService) analyzeTrack(filename string, track *gpx.Track, variant elevation.Variant, intervalM, deadbandM float64) (*models.Analysis, error) {
	lats := make([]float64, len(track.Points))
	lons := make([]float64, len(track.Points))
	for i, p := range track.Points {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}
	distances := spatial.CumulativeDistances(lats, lons)

	return s.analyze(filename, distances, track.Elevations(), variant, intervalM, deadbandM)
}

// BatchResult pairs a filename with its analysis outcome.
type BatchResult struct {
	Filename string
	Analysis *models.Analysis
	Err      error
}

// AnalyzeBatch runs analyses for many GPX files on a bounded worker pool.
// Results keep the input order, failures are reported per file.
func (s *AnalysisService) AnalyzeBatch(filenames []string, variant string, intervalM, deadbandM float64) []BatchResult {
	results := make([]BatchResult, len(filenames))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, name := range filenames {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			analysis, err := s.AnalyzeGPX(models.GPXAnalysisRequest{
				Filename:  name,
				Variant:   variant,
				IntervalM: intervalM,
				DeadbandM: deadbandM,
			})
			results[i] = BatchResult{Filename: name, Analysis: analysis, Err: err}
		}(i, name)
	}
	wg.Wait()

	return results
}

// CompareBatch analyzes the files and grades each result against its
// benchmark entry. Files without a benchmark entry or with a failed analysis
// are skipped and logged.
func (s *AnalysisService) CompareBatch(filenames []string, variant string, intervalM, deadbandM float64) ([]report.Row, error) {
	entries, err := s.benchmarkRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmarks: %w", err)
	}
	table := benchmark.NewTable(entries)

	results := s.AnalyzeBatch(filenames, variant, intervalM, deadbandM)

	var rows []report.Row
	for _, res := range results {
		if res.Err != nil {
			log.Printf("[Analysis] %s: %v", res.Filename, res.Err)
			continue
		}
		entry, ok := table.Lookup(res.Filename)
		if !ok {
			log.Printf("[Analysis] %s: no benchmark entry, skipping comparison", res.Filename)
			continue
		}
		rows = append(rows, report.NewRow(
			res.Filename,
			res.Analysis.Terrain,
			res.Analysis.Variant,
			res.Analysis.RawGainM,
			res.Analysis.RawLossM,
			res.Analysis.TotalAscentM,
			res.Analysis.TotalDescentM,
			entry.OfficialGainM,
		))
	}

	return rows, nil
}

// GetAnalysisByID retrieves a stored analysis
func (s *AnalysisService) GetAnalysisByID(id int64) (*models.Analysis, error) {
	analysis, err := s.analysisRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	if analysis == nil {
		return nil, fmt.Errorf("analysis not found")
	}
	return analysis, nil
}

// ListAnalyses retrieves stored analyses with filtering and pagination
func (s *AnalysisService) ListAnalyses(filter models.AnalysisFilter) (*models.AnalysesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	analyses, total, err := s.analysisRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))
	return &models.AnalysesResponse{
		Data:       analyses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ReloadBenchmarks replaces the stored benchmark set from a CSV file
func (s *AnalysisService) ReloadBenchmarks(csvPath string) (int, error) {
	entries, err := benchmark.LoadFile(csvPath)
	if err != nil {
		return 0, err
	}
	if err := s.benchmarkRepo.Replace(entries); err != nil {
		return 0, err
	}
	log.Printf("[Analysis] loaded %d benchmark entries from %s", len(entries), csvPath)
	return len(entries), nil
}

// ListBenchmarks retrieves all stored benchmark entries
func (s *AnalysisService) ListBenchmarks() ([]models.BenchmarkEntry, error) {
	entries, err := s.benchmarkRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmarks: %w", err)
	}
	return entries, nil
}

func (s *AnalysisService) analyze(filename string, distances, elevations []float64, variant elevation.Variant, intervalM, deadbandM float64) (*models.Analysis, error) {
	result, _, stats, err := elevation.Process(distances, elevations, elevation.Config{
		Variant:   variant,
		IntervalM: intervalM,
		DeadbandM: deadbandM,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process trace: %w", err)
	}

	totalDistance := 0.0
	if len(distances) > 0 {
		totalDistance = distances[len(distances)-1]
	}

	analysis := &models.Analysis{
		Filename:       filename,
		Variant:        string(stats.Variant),
		Terrain:        string(stats.Terrain.Label),
		GainPerKm:      stats.Terrain.GainPerKm,
		IntervalM:      stats.IntervalM,
		DeadbandM:      stats.DeadbandM,
		TotalAscentM:   result.TotalAscentM,
		TotalDescentM:  result.TotalDescentM,
		RawGainM:       stats.RawGainM,
		RawLossM:       stats.RawLossM,
		PointCount:     len(elevations),
		TotalDistanceM: totalDistance,
		Passes:         stats.Passes,
	}

	if err := s.analysisRepo.Create(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func parseVariant(s string) (elevation.Variant, error) {
	switch elevation.Variant(s) {
	case "":
		return elevation.VariantSymmetric, nil
	case elevation.VariantAsymmetric, elevation.VariantSymmetric, elevation.VariantAdaptive:
		return elevation.Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q", s)
	}
}

func validateFinite(distances, elevations []float64) error {
	for i, d := range distances {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("distance at index %d is not finite", i)
		}
		if i > 0 && d < distances[i-1] {
			return fmt.Errorf("distances must be non-decreasing (index %d)", i)
		}
	}
	for i, e := range elevations {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("elevation at index %d is not finite", i)
		}
	}
	return nil
}
