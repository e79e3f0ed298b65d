package elevation

import "math"

// maxHilliness is an effectively unbounded tier limit for the steepest band.
const maxHilliness = math.MaxFloat64

var inf = math.Inf(1)

// ClassifyTerrain labels a raw trace by its unfiltered gain per kilometer.
// Degenerate traces (zero length or zero distance) classify as flat with a
// zero ratio rather than NaN.
func ClassifyTerrain(distances, elevations []float64) TerrainProfile {
	rawGain, _ := rawGainLoss(elevations)

	totalKm := 0.0
	if len(distances) > 0 {
		totalKm = distances[len(distances)-1] / 1000.0
	}

	gainPerKm := 0.0
	if totalKm > 0 {
		gainPerKm = rawGain / totalKm
	}

	return TerrainProfile{Label: labelFor(gainPerKm), GainPerKm: gainPerKm}
}

func labelFor(gainPerKm float64) TerrainLabel {
	switch {
	case gainPerKm < 12:
		return TerrainFlat
	case gainPerKm < 30:
		return TerrainRolling
	case gainPerKm < 60:
		return TerrainHilly
	default:
		return TerrainMountainous
	}
}

// tierFor picks the first tier whose hilliness limit exceeds the ratio.
func tierFor(table []TerrainTier, gainPerKm float64) TerrainTier {
	for _, tier := range table {
		if gainPerKm < tier.HillinessLimit {
			return tier
		}
	}
	return table[len(table)-1]
}

// rawGainLoss sums positive and negative point-to-point deltas without any
// filtering. This is the figure naive summation would report.
func rawGainLoss(elevations []float64) (gain, loss float64) {
	for i := 1; i < len(elevations); i++ {
		delta := elevations[i] - elevations[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss += -delta
		}
	}
	return gain, loss
}
