package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Point is a single track point with an optional timestamp.
type Point struct {
	Lat  float64
	Lon  float64
	Ele  float64
	Time time.Time
}

// Track holds the points of all track and route segments in file order.
type Track struct {
	Name   string
	Points []Point
}

// Parse reads a GPX document and collects every trkpt and rtept that carries
// valid coordinates and an elevation. Points with malformed numbers are
// skipped, and a document truncated mid-stream still yields the points read
// so far. Real-world GPX exports are messy enough that a strict parser
// rejects a large share of otherwise usable files.
func Parse(r io.Reader) (*Track, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	track := &Track{}
	count := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if count > 0 {
				break
			}
			return nil, fmt.Errorf("failed to parse gpx: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "name":
			if track.Name == "" {
				var name string
				if err := decoder.DecodeElement(&name, &start); err == nil {
					track.Name = strings.TrimSpace(name)
				}
			}
		case "trkpt", "rtept":
			point, ok := decodePoint(decoder, start)
			if ok {
				track.Points = append(track.Points, point)
			}
			count++
		}
	}

	if len(track.Points) == 0 {
		return nil, fmt.Errorf("no usable track points (saw %d candidates)", count)
	}
	return track, nil
}

// ParseFile opens and parses a GPX file from disk.
func ParseFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gpx file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// rawPoint mirrors the trkpt element shape for decoding.
type rawPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Ele  string `xml:"ele"`
	Time string `xml:"time"`
}

func decodePoint(decoder *xml.Decoder, start xml.StartElement) (Point, bool) {
	var raw rawPoint
	if err := decoder.DecodeElement(&raw, &start); err != nil {
		return Point{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(raw.Lat), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Point{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(raw.Lon), 64)
	if err != nil || lon < -180 || lon > 180 {
		return Point{}, false
	}
	ele, err := strconv.ParseFloat(strings.TrimSpace(raw.Ele), 64)
	if err != nil {
		return Point{}, false
	}

	point := Point{Lat: lat, Lon: lon, Ele: ele}
	if raw.Time != "" {
		if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(raw.Time)); err == nil {
			point.Time = ts
		}
	}
	return point, true
}

// Elevations extracts the elevation series of a track.
func (t *Track) Elevations() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Ele
	}
	return out
}
