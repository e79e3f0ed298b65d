package elevation

// Gradients computes per-segment gradient percentages. Zero-length segments
// report gradient 0 rather than dividing by zero.
func Gradients(altitudeDelta, distanceDelta []float64) []float64 {
	n := min(len(altitudeDelta), len(distanceDelta))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if distanceDelta[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = altitudeDelta[i] / distanceDelta[i] * 100.0
	}
	return out
}

// CapGradients clamps any segment steeper than the tier's uphill or downhill
// limit, rewriting the altitude delta to sit exactly on the cap. This bounds
// the damage a residual outlier segment can do to the totals. Returns the
// capped deltas and the recomputed gradient array.
func CapGradients(altitudeDelta, distanceDelta []float64, tier TerrainTier) ([]float64, []float64) {
	capped := make([]float64, len(altitudeDelta))
	copy(capped, altitudeDelta)

	n := min(len(capped), len(distanceDelta))
	for i := 0; i < n; i++ {
		if distanceDelta[i] <= 0 {
			continue
		}
		gradient := capped[i] / distanceDelta[i] * 100.0
		if gradient > tier.MaxUphillPct {
			capped[i] = tier.MaxUphillPct * distanceDelta[i] / 100.0
		} else if gradient < -tier.MaxDownhillPct {
			capped[i] = -tier.MaxDownhillPct * distanceDelta[i] / 100.0
		}
	}

	return capped, Gradients(capped, distanceDelta)
}

// capGradientsAt clamps both directions at a single symmetric limit. The
// adaptive multi-pass correction tightens this limit pass by pass.
func capGradientsAt(altitudeDelta, distanceDelta []float64, maxGradientPct float64) []float64 {
	capped := make([]float64, len(altitudeDelta))
	copy(capped, altitudeDelta)

	n := min(len(capped), len(distanceDelta))
	for i := 0; i < n; i++ {
		if distanceDelta[i] <= 0 {
			continue
		}
		gradient := capped[i] / distanceDelta[i] * 100.0
		if gradient > maxGradientPct {
			capped[i] = maxGradientPct * distanceDelta[i] / 100.0
		} else if gradient < -maxGradientPct {
			capped[i] = -maxGradientPct * distanceDelta[i] / 100.0
		}
	}
	return capped
}
