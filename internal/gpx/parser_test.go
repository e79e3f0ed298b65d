package gpx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk>
    <name>Morning Ride</name>
    <trkseg>
      <trkpt lat="47.3769" lon="8.5417"><ele>408.2</ele><time>2024-05-01T08:00:00Z</time></trkpt>
      <trkpt lat="47.3771" lon="8.5420"><ele>409.1</ele></trkpt>
      <trkpt lat="47.3773" lon="8.5424"><ele>410.5</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParse(t *testing.T) {
	t.Parallel()

	track, err := Parse(strings.NewReader(sampleGPX))
	require.NoError(t, err)

	assert.Equal(t, "Morning Ride", track.Name)
	require.Len(t, track.Points, 3)
	assert.InDelta(t, 47.3769, track.Points[0].Lat, 1e-9)
	assert.InDelta(t, 408.2, track.Points[0].Ele, 1e-9)
	assert.False(t, track.Points[0].Time.IsZero())
	assert.True(t, track.Points[1].Time.IsZero())

	assert.Equal(t, []float64{408.2, 409.1, 410.5}, track.Elevations())
}

func TestParseSkipsMalformedPoints(t *testing.T) {
	t.Parallel()

	doc := `<gpx><trk><trkseg>
	  <trkpt lat="47.0" lon="8.0"><ele>100</ele></trkpt>
	  <trkpt lat="not-a-number" lon="8.0"><ele>101</ele></trkpt>
	  <trkpt lat="47.0" lon="8.0"></trkpt>
	  <trkpt lat="99.9" lon="200.5"><ele>102</ele></trkpt>
	  <trkpt lat="47.1" lon="8.1"><ele>103</ele></trkpt>
	</trkseg></trk></gpx>`

	track, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, track.Points, 2)
	assert.Equal(t, 100.0, track.Points[0].Ele)
	assert.Equal(t, 103.0, track.Points[1].Ele)
}

func TestParseTruncatedDocument(t *testing.T) {
	t.Parallel()

	doc := `<gpx><trk><trkseg>
	  <trkpt lat="47.0" lon="8.0"><ele>100</ele></trkpt>
	  <trkpt lat="47.1" lon="8.1"><ele>101</ele></trkpt>
	  <trkpt lat="47.2" lon="8.`

	track, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, track.Points, 2)
}

func TestParseRoutePoints(t *testing.T) {
	t.Parallel()

	doc := `<gpx><rte>
	  <rtept lat="47.0" lon="8.0"><ele>100</ele></rtept>
	  <rtept lat="47.1" lon="8.1"><ele>105</ele></rtept>
	</rte></gpx>`

	track, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, track.Points, 2)
}

func TestParseNoPoints(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`<gpx><trk><trkseg></trkseg></trk></gpx>`))
	assert.Error(t, err)
}
