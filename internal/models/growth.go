package models

// GrowthSource tags how a growth delta was computed
type GrowthSource string

const (
	// GrowthWindowed means the delta came from a true sample inside the
	// 18-30h lookback window, i.e. real 24h-equivalent data.
	GrowthWindowed GrowthSource = "windowed"
	// GrowthFallback means the delta is growth since the earliest-ever
	// snapshot, a proxy used when the window has no sample.
	GrowthFallback GrowthSource = "fallback"
)

// GrowthDelta is the derived growth figure for one candidate. It is computed
// on demand from the snapshot history and never persisted.
type GrowthDelta struct {
	Source GrowthSource `json:"source"`
	Stars  int          `json:"stars"`
	Forks  int          `json:"forks"`
}

// IsWindowed reports whether the delta came from a true windowed sample
func (g GrowthDelta) IsWindowed() bool {
	return g.Source == GrowthWindowed
}
