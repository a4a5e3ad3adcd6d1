package models

import "time"

// DealMetrics are the hard numbers reported for a deal. Stars24h and Forks24h
// are real history-derived deltas (0 on a candidate's first observation),
// never the total-stars filtering proxy.
type DealMetrics struct {
	Stars24h       int       `json:"stars_24h"`
	StarsTotal     int       `json:"stars_total"`
	Forks24h       int       `json:"forks_24h"`
	AgeDays        int       `json:"age_days"`
	LastCommitDate time.Time `json:"last_commit_date"`
}

// Deal is the normalized form of a candidate that survived every admission
// gate, carrying everything the scorer and the report need.
type Deal struct {
	Source      string            `json:"source"`
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	Metrics     DealMetrics       `json:"metrics"`
	Signals     ProductionSignals `json:"signals"`
	RawText     string            `json:"raw_text"`
}

// DescriptionText returns the description or an empty string
func (d *Deal) DescriptionText() string {
	if d.Description == nil {
		return ""
	}
	return *d.Description
}

// NewDeal normalizes a filtered candidate into a Deal. The reported deltas
// come straight from the snapshot history (0 on a brand-new candidate); the
// total-stars proxy some gates use never leaks into a report.
func NewDeal(c *Candidate, growth GrowthDelta, signals ProductionSignals, rawText string, now time.Time) *Deal {
	return &Deal{
		Source:      "github",
		URL:         c.URL,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		Metrics: DealMetrics{
			Stars24h:       growth.Stars,
			StarsTotal:     c.Stars,
			Forks24h:       growth.Forks,
			AgeDays:        c.AgeDays(now),
			LastCommitDate: c.PushedAt,
		},
		Signals: signals,
		RawText: rawText,
	}
}
