package elevation

// The deadband accumulator suppresses sub-threshold elevation deltas until
// enough of them pile up in one direction, then flushes the pending amount
// evenly across the points walked since the last flush. GPS micro-jitter
// (sub-meter back-and-forth) never crosses the threshold and so never counts
// as gain or loss.

// asymmetricDeadband is the legacy behavior: upward deltas go through the
// accumulator, downward deltas are written out unfiltered. Any opposite
// movement abandons the pending climb.
func asymmetricDeadband(deltas []float64, thresholdM float64) []float64 {
	out := make([]float64, len(deltas))
	if len(deltas) == 0 {
		return out
	}

	pending := 0.0
	lastFlush := 0

	for i := 1; i < len(deltas); i++ {
		delta := deltas[i]
		if delta > 0 {
			pending += delta
			if pending >= thresholdM {
				flush(out, pending, lastFlush, i)
				pending = 0
				lastFlush = i
			}
			continue
		}

		// Opposite or zero movement ends the run; the pending climb is
		// abandoned and later flushes must not reach back past this point.
		out[i] = delta
		pending = 0
		lastFlush = i
	}

	flushTrailing(out, pending, lastFlush)
	return out
}

// symmetricDeadband runs the identical accumulate-and-flush logic over upward
// and downward runs independently, with the same threshold for both, so
// ascent and descent receive equal treatment.
func symmetricDeadband(deltas []float64, thresholdM float64) []float64 {
	up := directionalDeadband(deltas, thresholdM, 1)
	down := directionalDeadband(deltas, thresholdM, -1)

	out := make([]float64, len(deltas))
	for i := range out {
		out[i] = up[i] + down[i]
	}
	return out
}

// directionalDeadband tracks runs moving in the given direction (+1 climbs,
// -1 descents). Deltas in the opposite direction contribute nothing here and
// reset the run.
func directionalDeadband(deltas []float64, thresholdM, direction float64) []float64 {
	out := make([]float64, len(deltas))
	if len(deltas) == 0 {
		return out
	}

	pending := 0.0
	lastFlush := 0

	for i := 1; i < len(deltas); i++ {
		delta := deltas[i] * direction
		if delta > 0 {
			pending += delta
			if pending >= thresholdM {
				flush(out, direction*pending, lastFlush, i)
				pending = 0
				lastFlush = i
			}
			continue
		}

		pending = 0
		lastFlush = i
	}

	flushTrailing(out, direction*pending, lastFlush)
	return out
}

// flush distributes amount evenly across out[lastFlush+1..i].
func flush(out []float64, amount float64, lastFlush, i int) {
	segments := i - lastFlush
	if segments <= 0 {
		out[i] = amount
		return
	}
	perSegment := amount / float64(segments)
	for j := lastFlush + 1; j <= i; j++ {
		out[j] = perSegment
	}
}

// flushTrailing spreads a below-threshold remainder over the tail of the
// sequence so pending movement at the end of a trace is not dropped.
func flushTrailing(out []float64, amount float64, lastFlush int) {
	if amount == 0 || lastFlush >= len(out)-1 {
		return
	}
	segments := len(out) - 1 - lastFlush
	perSegment := amount / float64(segments)
	for j := lastFlush + 1; j < len(out); j++ {
		out[j] = perSegment
	}
}
