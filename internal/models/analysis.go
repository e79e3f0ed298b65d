package models

import "time"

// Analysis is a persisted elevation analysis result for one trace.
type Analysis struct {
	ID             int64     `json:"id" db:"id"`
	Filename       string    `json:"filename,omitempty" db:"filename"`
	Variant        string    `json:"variant" db:"variant"`
	Terrain        string    `json:"terrain" db:"terrain"`
	GainPerKm      float64   `json:"gain_per_km" db:"gain_per_km"`
	IntervalM      float64   `json:"interval_m" db:"interval_m"`
	DeadbandM      float64   `json:"deadband_m" db:"deadband_m"`
	TotalAscentM   float64   `json:"total_ascent_m" db:"total_ascent_m"`
	TotalDescentM  float64   `json:"total_descent_m" db:"total_descent_m"`
	RawGainM       float64   `json:"raw_gain_m" db:"raw_gain_m"`
	RawLossM       float64   `json:"raw_loss_m" db:"raw_loss_m"`
	PointCount     int       `json:"point_count" db:"point_count"`
	TotalDistanceM float64   `json:"total_distance_m" db:"total_distance_m"`
	Passes         int       `json:"passes" db:"passes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// AnalysisRequest is the JSON body for analyzing a raw trace.
type AnalysisRequest struct {
	Distances  []float64 `json:"distances" binding:"required"`
	Elevations []float64 `json:"elevations" binding:"required"`
	Variant    string    `json:"variant"`
	IntervalM  float64   `json:"interval_m"`
	DeadbandM  float64   `json:"deadband_m"`
}

// GPXAnalysisRequest is the JSON body for analyzing a GPX file by name.
type GPXAnalysisRequest struct {
	Filename  string  `json:"filename" binding:"required"`
	Variant   string  `json:"variant"`
	IntervalM float64 `json:"interval_m"`
	DeadbandM float64 `json:"deadband_m"`
}

// AnalysisFilter holds list query parameters
type AnalysisFilter struct {
	Variant  string `form:"variant"`
	Terrain  string `form:"terrain"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AnalysesResponse is a paginated list of analyses
type AnalysesResponse struct {
	Data       []Analysis `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
