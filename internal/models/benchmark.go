package models

// BenchmarkEntry is one row of the official elevation gain reference set.
type BenchmarkEntry struct {
	ID            int64   `json:"id" db:"id"`
	Filename      string  `json:"filename" db:"filename"`
	OfficialGainM float64 `json:"official_gain_m" db:"official_gain_m"`
	Source        string  `json:"source" db:"source"`
	Notes         string  `json:"notes,omitempty" db:"notes"`
}
