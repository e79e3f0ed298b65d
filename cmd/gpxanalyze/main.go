package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jengzang/elevation-backend-go/internal/database"
	"github.com/jengzang/elevation-backend-go/internal/report"
	"github.com/jengzang/elevation-backend-go/internal/repository"
	"github.com/jengzang/elevation-backend-go/internal/service"
)

func main() {
	var (
		gpxPath      = flag.String("gpx", "", "GPX file or directory of GPX files (required)")
		variant      = flag.String("variant", "symmetric", "deadband variant: asymmetric, symmetric or adaptive")
		intervalM    = flag.Float64("interval", 0, "resampling interval in meters (0 = default)")
		deadbandM    = flag.Float64("deadband", 0, "deadband threshold in meters (0 = terrain default)")
		benchmarkCSV = flag.String("benchmark", "", "benchmark CSV for accuracy grading")
		outPath      = flag.String("out", "", "report output path (default stdout)")
		dbPath       = flag.String("db", ":memory:", "sqlite database for analysis results")
		workers      = flag.Int("workers", 4, "concurrent analyses")
	)
	flag.Parse()

	if *gpxPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	gpxDir, filenames, err := resolveInputs(*gpxPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Init(database.Config{Path: *dbPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	svc := service.NewAnalysisService(
		repository.NewAnalysisRepository(db),
		repository.NewBenchmarkRepository(db),
		gpxDir,
		*workers,
	)

	if *benchmarkCSV != "" {
		if _, err := svc.ReloadBenchmarks(*benchmarkCSV); err != nil {
			log.Fatal(err)
		}
		runComparison(svc, filenames, *variant, *intervalM, *deadbandM, *outPath)
		return
	}

	runAnalyses(svc, filenames, *variant, *intervalM, *deadbandM)
}

// resolveInputs turns the -gpx argument into a base directory plus filenames.
func resolveInputs(path string) (string, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !info.IsDir() {
		return filepath.Dir(path), []string{filepath.Base(path)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", nil, fmt.Errorf("cannot list %s: %w", path, err)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".gpx") {
			filenames = append(filenames, entry.Name())
		}
	}
	sort.Strings(filenames)

	if len(filenames) == 0 {
		return "", nil, fmt.Errorf("no .gpx files in %s", path)
	}
	return path, filenames, nil
}

func runComparison(svc *service.AnalysisService, filenames []string, variant string, intervalM, deadbandM float64, outPath string) {
	rows, err := svc.CompareBatch(filenames, variant, intervalM, deadbandM)
	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteCSV(out, rows); err != nil {
		log.Fatal(err)
	}

	summary := report.Summarize(rows)
	log.Printf("[Report] %d files, mean abs error %.2f%%, grades A=%d B=%d C=%d D=%d",
		summary.Count, summary.MeanAbsErr,
		summary.GradeCounts["A"], summary.GradeCounts["B"], summary.GradeCounts["C"], summary.GradeCounts["D"])
}

func runAnalyses(svc *service.AnalysisService, filenames []string, variant string, intervalM, deadbandM float64) {
	results := svc.AnalyzeBatch(filenames, variant, intervalM, deadbandM)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Printf("[Analysis] %s: %v", res.Filename, res.Err)
			continue
		}
		a := res.Analysis
		fmt.Printf("%s\t%s\t%s\tascent=%.1fm\tdescent=%.1fm\traw_gain=%.1fm\tdistance=%.1fkm\n",
			a.Filename, a.Terrain, a.Variant, a.TotalAscentM, a.TotalDescentM, a.RawGainM, a.TotalDistanceM/1000)
	}

	if failed > 0 {
		log.Printf("[Analysis] %d of %d files failed", failed, len(results))
		os.Exit(1)
	}
}
