package elevation

// Accumulate reduces a post-deadband delta sequence into ascent and descent
// totals with per-point prefix sums. No filtering happens here; every bit of
// noise suppression has already run upstream.
func Accumulate(deltas []float64) Result {
	perAscent := make([]float64, len(deltas))
	perDescent := make([]float64, len(deltas))

	ascent, descent := 0.0, 0.0
	for i, delta := range deltas {
		if delta > 0 {
			ascent += delta
		} else if delta < 0 {
			descent += -delta
		}
		perAscent[i] = ascent
		perDescent[i] = descent
	}

	return Result{
		TotalAscentM:    ascent,
		TotalDescentM:   descent,
		PerPointAscent:  perAscent,
		PerPointDescent: perDescent,
	}
}
