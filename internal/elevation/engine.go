// Package elevation turns a noisy GPS trace (cumulative distance plus
// elevation samples) into trustworthy total ascent and descent figures.
// Consumer GPS elevation is full of spikes, quantization and drift, so naive
// point-to-point summation wildly over-counts gain. The engine runs a
// terrain-adaptive pipeline: classify hilliness, resample onto a uniform
// distance grid, denoise (spike removal, median, Gaussian), cap implausible
// gradients, push the deltas through a deadband accumulator, and reduce.
//
// Every invocation is a pure function of its inputs with call-scoped buffers
// only, so callers may run any number of traces concurrently without locking.
package elevation

import "fmt"

const (
	defaultIntervalM    = 10.0
	defaultMedianWindow = 3
	minPipelinePoints   = 3

	// Adaptive escalation: traces whose raw gain/loss ratio exceeds the
	// tolerance get repeated symmetric passes with tightening parameters.
	adaptiveRatioTolerance     = 1.1
	adaptiveSymmetricIntervalM = 1.9
	adaptiveMaxPasses          = 5
	adaptiveStartDeadbandM     = 2.0
	adaptiveDeadbandStepM      = 0.5
	adaptiveStartCapPct        = 30.0
	adaptiveCapStepPct         = 2.0
)

// Process runs one engine invocation over a raw trace. distances must be
// non-decreasing cumulative meters and the same length as elevations; the
// engine does not repair violations of that precondition. Malformed-but-small
// inputs never fail: traces shorter than three points fall back to raw
// summation with no smoothing.
func Process(distances, elevations []float64, cfg Config) (Result, ProcessedTrace, Stats, error) {
	if len(distances) != len(elevations) {
		return Result{}, ProcessedTrace{}, Stats{}, fmt.Errorf(
			"trace length mismatch: %d distances vs %d elevations", len(distances), len(elevations))
	}

	cfg = cfg.withDefaults()
	profile := ClassifyTerrain(distances, elevations)
	rawGain, rawLoss := rawGainLoss(elevations)

	stats := Stats{
		Terrain:   profile,
		Variant:   cfg.Variant,
		IntervalM: cfg.IntervalM,
		RawGainM:  rawGain,
		RawLossM:  rawLoss,
		Passes:    1,
	}
	stats.log("terrain classified as %s (%.1f m/km)", profile.Label, profile.GainPerKm)

	if len(elevations) < minPipelinePoints {
		stats.log("trace has %d points, returning raw summation", len(elevations))
		trace := rawTrace(distances, elevations)
		return Accumulate(trace.AltitudeDelta), trace, stats, nil
	}

	if cfg.Variant == VariantAdaptive {
		return processAdaptive(distances, elevations, cfg, profile, stats)
	}

	trace, ok := runPipeline(distances, elevations, cfg, profile, cfg.DeadbandM, &stats)
	if !ok {
		stats.log("resampling declined, returning raw summation")
		trace = rawTrace(distances, elevations)
	}
	return Accumulate(trace.AltitudeDelta), trace, stats, nil
}

// processAdaptive keeps the proven symmetric processing for balanced traces
// and escalates to multi-pass correction when raw ascent is inflated
// relative to descent.
func processAdaptive(distances, elevations []float64, cfg Config, profile TerrainProfile, stats Stats) (Result, ProcessedTrace, Stats, error) {
	rawRatio := inf
	if stats.RawLossM > 0 {
		rawRatio = stats.RawGainM / stats.RawLossM
	}

	if rawRatio <= adaptiveRatioTolerance {
		stats.log("raw ratio %.3f within tolerance, using symmetric %.1f m interval", rawRatio, adaptiveSymmetricIntervalM)
		cfg.Variant = VariantSymmetric
		cfg.IntervalM = adaptiveSymmetricIntervalM
		stats.IntervalM = cfg.IntervalM
		trace, ok := runPipeline(distances, elevations, cfg, profile, cfg.DeadbandM, &stats)
		if !ok {
			trace = rawTrace(distances, elevations)
		}
		return Accumulate(trace.AltitudeDelta), trace, stats, nil
	}

	stats.log("raw ratio %.3f exceeds tolerance, escalating to multi-pass correction", rawRatio)

	curDist, curElev := distances, elevations
	deadband := adaptiveStartDeadbandM
	capPct := adaptiveStartCapPct

	var trace ProcessedTrace
	var result Result

	for pass := 1; pass <= adaptiveMaxPasses; pass++ {
		stats.Passes = pass

		gridDist, gridElev := Resample(curDist, curElev, cfg.IntervalM)
		if len(gridElev) < minPipelinePoints {
			trace = rawTrace(curDist, curElev)
			result = Accumulate(trace.AltitudeDelta)
			break
		}

		tier := tierFor(cfg.TerrainTable, profile.GainPerKm)
		cleaned := denoiseChain(gridElev, cfg.MedianWindow, tier.SmoothingWindow, tier.SpikeThresholdM, profile.GainPerKm)

		deltaAlt := altitudeDeltas(cleaned)
		deltaDist := distanceDeltas(gridDist)

		capped := capGradientsAt(deltaAlt, deltaDist, capPct)
		filtered := symmetricDeadband(capped, deadband)

		result = Accumulate(filtered)
		trace = ProcessedTrace{
			Distances:     gridDist,
			Elevations:    cleaned,
			AltitudeDelta: filtered,
			GradientPct:   Gradients(filtered, deltaDist),
		}

		ratio := result.GainLossRatio()
		stats.DeadbandM = deadband
		stats.SmoothingWindow = tier.SmoothingWindow
		stats.SpikeThresholdM = tier.SpikeThresholdM
		stats.log("pass %d: deadband %.1f m, cap %.0f%%, ratio %.3f", pass, deadband, capPct, ratio)

		if ratio <= adaptiveRatioTolerance {
			break
		}

		// Next pass works on the corrected series with tighter parameters.
		curDist = gridDist
		curElev = rebuildElevations(cleaned, filtered)
		deadband += adaptiveDeadbandStepM
		capPct -= adaptiveCapStepPct
	}

	return result, trace, stats, nil
}

// runPipeline executes resample -> denoise -> gradient cap -> deadband for
// the asymmetric and symmetric variants. Returns false when resampling
// declines the trace (degenerate grid).
func runPipeline(distances, elevations []float64, cfg Config, profile TerrainProfile, deadbandM float64, stats *Stats) (ProcessedTrace, bool) {
	gridDist, gridElev := Resample(distances, elevations, cfg.IntervalM)
	if len(gridElev) < minPipelinePoints {
		return ProcessedTrace{}, false
	}

	tier := tierFor(cfg.TerrainTable, profile.GainPerKm)
	if deadbandM == 0 {
		deadbandM = defaultDeadband(profile.GainPerKm, cfg.IntervalM)
	}

	cleaned := denoiseChain(gridElev, cfg.MedianWindow, tier.SmoothingWindow, tier.SpikeThresholdM, profile.GainPerKm)

	deltaAlt := altitudeDeltas(cleaned)
	deltaDist := distanceDeltas(gridDist)
	capped, gradients := CapGradients(deltaAlt, deltaDist, tier)

	var filtered []float64
	switch cfg.Variant {
	case VariantAsymmetric:
		filtered = asymmetricDeadband(capped, deadbandM)
	default:
		filtered = symmetricDeadband(capped, deadbandM)
	}

	stats.DeadbandM = deadbandM
	stats.SmoothingWindow = tier.SmoothingWindow
	stats.SpikeThresholdM = tier.SpikeThresholdM
	stats.log("%d points resampled to %d at %.1f m, window %d, deadband %.1f m",
		len(elevations), len(gridElev), cfg.IntervalM, tier.SmoothingWindow, deadbandM)

	return ProcessedTrace{
		Distances:     gridDist,
		Elevations:    cleaned,
		AltitudeDelta: filtered,
		GradientPct:   gradients,
	}, true
}

func (c Config) withDefaults() Config {
	if c.Variant == "" {
		c.Variant = VariantSymmetric
	}
	if c.IntervalM <= 0 {
		c.IntervalM = defaultIntervalM
	}
	if c.MedianWindow <= 0 {
		c.MedianWindow = defaultMedianWindow
	}
	if c.TerrainTable == nil {
		c.TerrainTable = DefaultTerrainTable
	}
	return c
}

// defaultDeadband mirrors the tuned interval/terrain matrix: flatter terrain
// and finer grids tolerate smaller thresholds.
func defaultDeadband(gainPerKm, intervalM float64) float64 {
	switch {
	case gainPerKm < 20:
		switch int(intervalM) {
		case 1:
			return 0.8
		case 3:
			return 1.0
		case 6:
			return 1.2
		default:
			return 1.5
		}
	case gainPerKm < 40:
		switch int(intervalM) {
		case 1:
			return 1.5
		case 3:
			return 1.8
		case 6:
			return 2.0
		default:
			return 2.5
		}
	default:
		switch int(intervalM) {
		case 1:
			return 2.0
		case 3:
			return 1.8
		case 6:
			return 1.5
		default:
			return 2.0
		}
	}
}

// rawTrace packages the unmodified input as a processed trace for the
// degenerate fallbacks.
func rawTrace(distances, elevations []float64) ProcessedTrace {
	dist := make([]float64, len(distances))
	copy(dist, distances)
	elev := make([]float64, len(elevations))
	copy(elev, elevations)

	deltaAlt := altitudeDeltas(elev)
	deltaDist := distanceDeltas(dist)

	return ProcessedTrace{
		Distances:     dist,
		Elevations:    elev,
		AltitudeDelta: deltaAlt,
		GradientPct:   Gradients(deltaAlt, deltaDist),
	}
}

// altitudeDeltas returns point-to-point elevation changes; the first entry is
// always zero.
func altitudeDeltas(elevations []float64) []float64 {
	out := make([]float64, len(elevations))
	for i := 1; i < len(elevations); i++ {
		out[i] = elevations[i] - elevations[i-1]
	}
	return out
}

// distanceDeltas returns segment lengths; the first entry carries the offset
// of the first sample from zero.
func distanceDeltas(distances []float64) []float64 {
	out := make([]float64, len(distances))
	if len(distances) == 0 {
		return out
	}
	out[0] = distances[0]
	for i := 1; i < len(distances); i++ {
		out[i] = distances[i] - distances[i-1]
	}
	return out
}

// rebuildElevations integrates a delta sequence back into an elevation
// series anchored at the cleaned series' start.
func rebuildElevations(cleaned, deltas []float64) []float64 {
	out := make([]float64, len(deltas))
	if len(deltas) == 0 {
		return out
	}
	if len(cleaned) > 0 {
		out[0] = cleaned[0]
	}
	for i := 1; i < len(deltas); i++ {
		out[i] = out[i-1] + deltas[i]
	}
	return out
}

func (s *Stats) log(format string, args ...any) {
	s.Steps = append(s.Steps, fmt.Sprintf(format, args...))
}
