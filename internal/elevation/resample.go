package elevation

const (
	// minResampleStepM guards against pathological intervals that would
	// explode the grid.
	minResampleStepM = 0.1
	// maxResamplePoints bounds memory for corrupt traces reporting huge
	// distances.
	maxResamplePoints = 1_000_000
)

// Resample reprojects a trace onto a uniform distance grid via linear
// interpolation so that fixed-size filters behave the same regardless of the
// GPS sampling rate. The output grid runs from 0 to the last raw distance in
// stepM increments; elevations are never extrapolated beyond the last sample.
// Returns nil slices when the grid would exceed maxResamplePoints.
func Resample(distances, elevations []float64, stepM float64) ([]float64, []float64) {
	if len(distances) == 0 || len(elevations) == 0 {
		return nil, nil
	}
	if stepM < minResampleStepM {
		stepM = minResampleStepM
	}

	total := distances[len(distances)-1]
	numPoints := int(total/stepM) + 1
	if numPoints > maxResamplePoints {
		return nil, nil
	}

	gridDist := make([]float64, 0, numPoints)
	gridElev := make([]float64, 0, numPoints)

	// Bracketing cursor advances monotonically with the targets, so the whole
	// resample is a single pass over the raw trace.
	cursor := 1
	for i := 0; i < numPoints; i++ {
		target := float64(i) * stepM
		if target > total {
			break
		}
		gridDist = append(gridDist, target)
		gridElev = append(gridElev, interpolateAt(distances, elevations, target, &cursor))
	}

	return gridDist, gridElev
}

func interpolateAt(distances, elevations []float64, target float64, cursor *int) float64 {
	if target <= distances[0] {
		return elevations[0]
	}
	last := len(distances) - 1
	if target >= distances[last] {
		return elevations[last]
	}

	for *cursor <= last && distances[*cursor] < target {
		*cursor++
	}

	d1, d2 := distances[*cursor-1], distances[*cursor]
	e1, e2 := elevations[*cursor-1], elevations[*cursor]

	// Duplicate raw samples collapse to the earlier elevation instead of NaN.
	if d2-d1 < 1e-10 {
		return e1
	}

	t := (target - d1) / (d2 - d1)
	return e1 + t*(e2-e1)
}
