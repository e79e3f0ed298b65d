package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	t.Parallel()

	cases := []struct {
		errPct float64
		want   string
	}{
		{0, "A"},
		{9.9, "A"},
		{-10.0, "A"},
		{10.1, "B"},
		{-19.9, "B"},
		{20.1, "C"},
		{35.0, "C"},
		{-35.1, "D"},
		{120, "D"},
		{math.Inf(1), "D"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Grade(c.errPct), "errPct=%v", c.errPct)
	}
}

func TestErrorPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 10.0, ErrorPercent(100, 110), 1e-9)
	assert.InDelta(t, -25.0, ErrorPercent(400, 300), 1e-9)
	assert.Zero(t, ErrorPercent(0, 0))
	assert.True(t, math.IsInf(ErrorPercent(0, 50), 1))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	rows := []Row{
		NewRow("a.gpx", "Flat", "symmetric", 140, 138, 105, 103, 100),
		NewRow("b.gpx", "Hilly", "symmetric", 260, 255, 170, 168, 200),
		NewRow("c.gpx", "Flat", "symmetric", 15, 14, 10, 9, 0),
	}

	s := Summarize(rows)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.GradeCounts["A"])
	assert.Equal(t, 1, s.GradeCounts["B"])
	assert.Equal(t, 1, s.GradeCounts["D"])
	// Infinite error row excluded from numeric aggregates: (5 + 15) / 2.
	assert.InDelta(t, 10.0, s.MeanAbsErr, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	rows := []Row{
		NewRow("a.gpx", "Flat", "symmetric", 140, 138, 105, 100, 100),
		NewRow("b.gpx", "Mountainous", "adaptive", 1800, 1750, 1320, 1300, 1500),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t,
		"filename,terrain,variant,raw_gain_m,raw_loss_m,computed_gain_m,computed_loss_m,gain_loss_ratio,official_gain_m,error_pct,grade",
		lines[0])
	assert.Equal(t, "a.gpx,Flat,symmetric,140.0,138.0,105.0,100.0,1.050,100.0,5.00,A", lines[1])
	assert.Equal(t, "b.gpx,Mountainous,adaptive,1800.0,1750.0,1320.0,1300.0,1.015,1500.0,-12.00,B", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "# files=2"))
}
