package elevation

// Variant selects the deadband accumulation strategy.
type Variant string

const (
	// VariantAsymmetric is the legacy distance-based strategy: only upward
	// deltas run through the deadband accumulator, descents pass through
	// unfiltered. Loss comes out under-filtered relative to gain, which skews
	// the gain/loss ratio on noisy traces. Kept for backward-compatible output.
	VariantAsymmetric Variant = "asymmetric"

	// VariantSymmetric applies the same accumulate-and-flush logic to upward
	// and downward runs with one threshold, keeping the gain/loss ratio near 1.
	VariantSymmetric Variant = "symmetric"

	// VariantAdaptive inspects the raw gain/loss ratio and escalates from
	// standard symmetric processing to a multi-pass correction for traces
	// whose ascent is inflated relative to descent.
	VariantAdaptive Variant = "adaptive"
)

// TerrainLabel is the coarse steepness class of a whole trace.
type TerrainLabel string

const (
	TerrainFlat        TerrainLabel = "Flat"
	TerrainRolling     TerrainLabel = "Rolling"
	TerrainHilly       TerrainLabel = "Hilly"
	TerrainMountainous TerrainLabel = "Mountainous"
)

// TerrainProfile is derived once per trace and feeds parameter selection.
type TerrainProfile struct {
	Label     TerrainLabel `json:"label"`
	GainPerKm float64      `json:"gainPerKm"`
}

// TerrainTier binds a hilliness band to its processing parameters. Tiers are
// ordered by ascending HillinessLimit; the first tier whose limit exceeds the
// trace's gain per kilometer wins.
type TerrainTier struct {
	HillinessLimit  float64 // m gained per km, upper bound of the band
	MaxUphillPct    float64 // gradient cap for climbing segments
	MaxDownhillPct  float64 // gradient cap for descending segments
	SmoothingWindow int     // Gaussian window, in resampled samples
	SpikeThresholdM float64 // single-point jump treated as a GPS spike
}

// DefaultTerrainTable widens smoothing and tightens gradient caps as terrain
// flattens: on a flat route any steep segment is noise, on a mountain route
// it is usually real relief.
var DefaultTerrainTable = []TerrainTier{
	{HillinessLimit: 20, MaxUphillPct: 15, MaxDownhillPct: 12, SmoothingWindow: 50, SpikeThresholdM: 3},
	{HillinessLimit: 30, MaxUphillPct: 20, MaxDownhillPct: 15, SmoothingWindow: 40, SpikeThresholdM: 4},
	{HillinessLimit: 40, MaxUphillPct: 25, MaxDownhillPct: 20, SmoothingWindow: 30, SpikeThresholdM: 5},
	{HillinessLimit: 50, MaxUphillPct: 32, MaxDownhillPct: 27, SmoothingWindow: 25, SpikeThresholdM: 6},
	{HillinessLimit: 60, MaxUphillPct: 35, MaxDownhillPct: 31, SmoothingWindow: 20, SpikeThresholdM: 7},
	{HillinessLimit: maxHilliness, MaxUphillPct: 40, MaxDownhillPct: 36, SmoothingWindow: 15, SpikeThresholdM: 8},
}

// Config controls one engine invocation. The zero value is usable: defaults
// are filled in by Process. The engine borrows the config read-only.
type Config struct {
	Variant Variant
	// IntervalM is the resampling grid step in meters. 10 m default.
	IntervalM float64
	// DeadbandM is the flush threshold in meters. When zero the engine picks
	// a terrain- and interval-dependent default.
	DeadbandM float64
	// MedianWindow is the spike-removal median window (3 default, 5 for
	// precision-tuned variants).
	MedianWindow int
	// TerrainTable overrides DefaultTerrainTable when non-nil.
	TerrainTable []TerrainTier
}

// ProcessedTrace is the cleaned series produced by the resample, denoise and
// gradient-cap stages. Each stage returns a fresh structure; nothing upstream
// is mutated.
type ProcessedTrace struct {
	Distances     []float64 `json:"distances"`
	Elevations    []float64 `json:"elevations"`
	AltitudeDelta []float64 `json:"altitudeDelta"`
	GradientPct   []float64 `json:"gradientPct"`
}

// Result holds the accumulated totals. PerPointAscent and PerPointDescent are
// monotonically non-decreasing prefix sums whose final elements equal the
// totals.
type Result struct {
	TotalAscentM    float64   `json:"totalAscentM"`
	TotalDescentM   float64   `json:"totalDescentM"`
	PerPointAscent  []float64 `json:"perPointAscent,omitempty"`
	PerPointDescent []float64 `json:"perPointDescent,omitempty"`
}

// GainLossRatio returns ascent divided by descent, +Inf when descent is zero.
func (r Result) GainLossRatio() float64 {
	if r.TotalDescentM <= 0 {
		return inf
	}
	return r.TotalAscentM / r.TotalDescentM
}

// Stats is a read-only diagnostic bundle describing what one invocation did.
type Stats struct {
	Terrain         TerrainProfile `json:"terrain"`
	Variant         Variant        `json:"variant"`
	IntervalM       float64        `json:"intervalM"`
	DeadbandM       float64        `json:"deadbandM"`
	SmoothingWindow int            `json:"smoothingWindow"`
	SpikeThresholdM float64        `json:"spikeThresholdM"`
	RawGainM        float64        `json:"rawGainM"`
	RawLossM        float64        `json:"rawLossM"`
	Passes          int            `json:"passes"`
	Steps           []string       `json:"steps"`
}
