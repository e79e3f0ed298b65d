package benchmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	csvData := `filename,official_elevation_gain_m,source,notes
alpine_climb.gpx,1250.0,race-organizer,certified course
flat_commute.gpx,42,strava
rolling_hills.gpx,380.5,garmin-connect,barometric`

	entries, err := Load(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "alpine_climb.gpx", entries[0].Filename)
	assert.InDelta(t, 1250.0, entries[0].OfficialGainM, 1e-9)
	assert.Equal(t, "race-organizer", entries[0].Source)
	assert.Equal(t, "certified course", entries[0].Notes)

	assert.Equal(t, "flat_commute.gpx", entries[1].Filename)
	assert.Empty(t, entries[1].Notes)
}

func TestLoadWithoutHeader(t *testing.T) {
	t.Parallel()

	entries, err := Load(strings.NewReader("a.gpx,100\nb.gpx,200\n"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoadRejectsBadGain(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("filename,gain\na.gpx,100\nb.gpx,not-a-number\n"))
	assert.Error(t, err)
}

func TestTableLookup(t *testing.T) {
	t.Parallel()

	entries, err := Load(strings.NewReader("a.gpx,100\nb.gpx,200\na.gpx,150\n"))
	require.NoError(t, err)

	table := NewTable(entries)
	entry, ok := table.Lookup("a.gpx")
	require.True(t, ok)
	assert.InDelta(t, 150.0, entry.OfficialGainM, 1e-9, "later duplicate wins")

	_, ok = table.Lookup("missing.gpx")
	assert.False(t, ok)
}
