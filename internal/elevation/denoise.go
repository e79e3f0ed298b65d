package elevation

import (
	"math"
	"sort"
)

// flatExtraSmoothing parameters: near-flat routes get one long rolling-mean
// pass because any residual bounce there is pure noise.
const (
	flatHillinessLimit = 20.0
	flatMeanWindow     = 83
)

// RemoveSpikes replaces single-point GPS spikes, a jump beyond thresholdM
// immediately reversed by the next sample, with the average of the two
// neighbors. Genuine step edges survive because both of their changes point
// the same way.
func RemoveSpikes(elevations []float64, thresholdM float64) []float64 {
	out := make([]float64, len(elevations))
	copy(out, elevations)
	if len(elevations) < 3 || thresholdM <= 0 {
		return out
	}

	for i := 1; i < len(elevations)-1; i++ {
		prevChange := elevations[i] - elevations[i-1]
		nextChange := elevations[i+1] - elevations[i]

		if math.Abs(prevChange) > thresholdM &&
			math.Abs(nextChange) > thresholdM &&
			prevChange*nextChange < -thresholdM {
			out[i] = (elevations[i-1] + elevations[i+1]) / 2.0
		}
	}
	return out
}

// MedianFilter applies a centered median of the given window, clamped at the
// boundaries. Even windows average the two middle values.
func MedianFilter(data []float64, window int) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}
	if window < 2 {
		copy(out, data)
		return out
	}

	half := window / 2
	buf := make([]float64, 0, window+1)

	for i := range data {
		start := max(0, i-half)
		end := min(len(data), i+half+1)

		buf = append(buf[:0], data[start:end]...)
		sort.Float64s(buf)

		n := len(buf)
		if n%2 == 0 {
			out[i] = (buf[n/2-1] + buf[n/2]) / 2.0
		} else {
			out[i] = buf[n/2]
		}
	}
	return out
}

// GaussianSmooth applies a Gaussian-weighted moving average with
// sigma = window/6 over a boundary-clamped centered window.
func GaussianSmooth(data []float64, window int) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}
	if window < 2 {
		copy(out, data)
		return out
	}

	sigma := float64(window) / 6.0
	half := window / 2

	for i := range data {
		start := max(0, i-half)
		end := min(len(data), i+half+1)

		weightedSum, weightSum := 0.0, 0.0
		for j := start; j < end; j++ {
			d := float64(j - i)
			w := math.Exp(-0.5 * (d / sigma) * (d / sigma))
			weightedSum += data[j] * w
			weightSum += w
		}

		if weightSum > 0 {
			out[i] = weightedSum / weightSum
		} else {
			out[i] = data[i]
		}
	}
	return out
}

// RollingMean is a trailing-window arithmetic mean.
func RollingMean(data []float64, window int) []float64 {
	out := make([]float64, len(data))
	if window < 2 {
		copy(out, data)
		return out
	}

	sum := 0.0
	for i := range data {
		sum += data[i]
		if i >= window {
			sum -= data[i-window]
		}
		count := min(i+1, window)
		out[i] = sum / float64(count)
	}
	return out
}

// denoiseChain runs spike removal, the median filter and Gaussian smoothing
// in sequence, plus the long rolling mean for near-flat terrain. Each stage
// consumes the previous stage's output and returns a fresh slice.
func denoiseChain(elevations []float64, medianWindow, gaussianWindow int, spikeThresholdM, gainPerKm float64) []float64 {
	cleaned := RemoveSpikes(elevations, spikeThresholdM)
	cleaned = MedianFilter(cleaned, medianWindow)
	cleaned = GaussianSmooth(cleaned, gaussianWindow)
	if gainPerKm < flatHillinessLimit {
		cleaned = RollingMean(cleaned, flatMeanWindow)
	}
	return cleaned
}
