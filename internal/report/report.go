package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"github.com/jengzang/elevation-backend-go/internal/stats"
)

// Row compares one computed analysis against its official benchmark value.
type Row struct {
	Filename      string
	Terrain       string
	Variant       string
	RawGainM      float64
	RawLossM      float64
	ComputedGainM float64
	ComputedLossM float64
	GainLossRatio float64
	OfficialGainM float64
	ErrorPct      float64
	Grade         string
}

// Accuracy grade thresholds as absolute error percentage.
const (
	gradeALimit = 10.0
	gradeBLimit = 20.0
	gradeCLimit = 35.0
)

// NewRow builds a comparison row, computing the gain/loss ratio, error and
// grade from the raw and processed totals.
func NewRow(filename, terrain, variant string, rawGainM, rawLossM, computedGainM, computedLossM, officialGainM float64) Row {
	ratio := math.Inf(1)
	if computedLossM > 0 {
		ratio = computedGainM / computedLossM
	}
	errPct := ErrorPercent(officialGainM, computedGainM)
	return Row{
		Filename:      filename,
		Terrain:       terrain,
		Variant:       variant,
		RawGainM:      rawGainM,
		RawLossM:      rawLossM,
		ComputedGainM: computedGainM,
		ComputedLossM: computedLossM,
		GainLossRatio: ratio,
		OfficialGainM: officialGainM,
		ErrorPct:      errPct,
		Grade:         Grade(errPct),
	}
}

// ErrorPercent returns the signed percentage error of computed against
// official. A zero official value with a nonzero computed value maps to
// +Inf so it grades as D rather than a spurious perfect score.
func ErrorPercent(officialM, computedM float64) float64 {
	if officialM == 0 {
		if computedM == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (computedM - officialM) / officialM * 100.0
}

// Grade maps a signed error percentage to an accuracy grade.
func Grade(errPct float64) string {
	abs := math.Abs(errPct)
	switch {
	case abs <= gradeALimit:
		return "A"
	case abs <= gradeBLimit:
		return "B"
	case abs <= gradeCLimit:
		return "C"
	default:
		return "D"
	}
}

// Summary aggregates a report run.
type Summary struct {
	Count        int
	MeanAbsErr   float64
	MedianAbsErr float64
	StdDevErr    float64
	GradeCounts  map[string]int
}

// Summarize computes aggregate accuracy over the comparison rows. Rows with
// a non-finite error (missing or zero official value) are counted in the
// grade histogram but excluded from the numeric aggregates.
func Summarize(rows []Row) Summary {
	s := Summary{GradeCounts: make(map[string]int)}

	var absErrs, errs []float64
	for _, row := range rows {
		s.Count++
		s.GradeCounts[row.Grade]++
		if math.IsInf(row.ErrorPct, 0) || math.IsNaN(row.ErrorPct) {
			continue
		}
		errs = append(errs, row.ErrorPct)
		absErrs = append(absErrs, math.Abs(row.ErrorPct))
	}

	s.MeanAbsErr = stats.Mean(absErrs)
	s.MedianAbsErr = stats.Median(absErrs)
	s.StdDevErr = stats.StdDev(errs)
	return s
}

// WriteCSV writes the comparison rows plus a trailing summary comment block.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	header := []string{
		"filename", "terrain", "variant",
		"raw_gain_m", "raw_loss_m", "computed_gain_m", "computed_loss_m",
		"gain_loss_ratio", "official_gain_m", "error_pct", "grade",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Filename,
			row.Terrain,
			row.Variant,
			fmt.Sprintf("%.1f", row.RawGainM),
			fmt.Sprintf("%.1f", row.RawLossM),
			fmt.Sprintf("%.1f", row.ComputedGainM),
			fmt.Sprintf("%.1f", row.ComputedLossM),
			formatRatio(row.GainLossRatio),
			fmt.Sprintf("%.1f", row.OfficialGainM),
			formatErrPct(row.ErrorPct),
			row.Grade,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report row for %s: %w", row.Filename, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	summary := Summarize(rows)
	_, err := fmt.Fprintf(w, "# files=%d mean_abs_err=%.2f%% median_abs_err=%.2f%% stddev_err=%.2f%% grades A=%d B=%d C=%d D=%d\n",
		summary.Count, summary.MeanAbsErr, summary.MedianAbsErr, summary.StdDevErr,
		summary.GradeCounts["A"], summary.GradeCounts["B"], summary.GradeCounts["C"], summary.GradeCounts["D"])
	if err != nil {
		return fmt.Errorf("failed to write report summary: %w", err)
	}
	return nil
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3f", v)
}

func formatErrPct(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}
