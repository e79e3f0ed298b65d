package elevation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleUniformGrid(t *testing.T) {
	t.Parallel()

	distances := []float64{0, 25, 100}
	elevations := []float64{100, 105, 120}

	gridDist, gridElev := Resample(distances, elevations, 10)
	require.Len(t, gridDist, 11)
	require.Len(t, gridElev, 11)

	for i := 1; i < len(gridDist); i++ {
		assert.InDelta(t, 10.0, gridDist[i]-gridDist[i-1], 1e-9)
	}

	// 10 m sits within the first raw segment (0..25, 100..105).
	assert.InDelta(t, 102.0, gridElev[1], 1e-9)
	// 100 m is the last raw sample, no extrapolation.
	assert.InDelta(t, 120.0, gridElev[10], 1e-9)
}

func TestResampleZeroLengthSegment(t *testing.T) {
	t.Parallel()

	// Duplicate distance samples must not produce NaN.
	distances := []float64{0, 50, 50, 100}
	elevations := []float64{100, 110, 140, 120}

	_, gridElev := Resample(distances, elevations, 25)
	for i, e := range gridElev {
		assert.False(t, e != e, "NaN at index %d", i)
	}
}

func TestResampleEmptyInput(t *testing.T) {
	t.Parallel()

	gridDist, gridElev := Resample(nil, nil, 10)
	assert.Nil(t, gridDist)
	assert.Nil(t, gridElev)
}

func TestResampleTinyStepClamped(t *testing.T) {
	t.Parallel()

	distances := []float64{0, 1}
	elevations := []float64{100, 101}

	gridDist, _ := Resample(distances, elevations, 0.0001)
	require.NotEmpty(t, gridDist)
	assert.LessOrEqual(t, len(gridDist), 11)
}
