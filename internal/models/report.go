package models

import "time"

// RejectionReason codes emitted by the admission filter
const (
	ReasonAlreadyJudged = "already_judged"
	ReasonIncubating    = "incubating"
	ReasonTooYoung      = "too_young"
	ReasonTooOld        = "too_old"
	ReasonNotTrending   = "not_trending"
	ReasonNoKeywords    = "no_keywords"
	ReasonWeakContent   = "weak_content"
)

// AuditEntry records why a scanned candidate did not reach the scorer
type AuditEntry struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// DealRecord pairs an admitted deal with its verdict and recomputed score
type DealRecord struct {
	Project    *Deal      `json:"project"`
	Verdict    *Scorecard `json:"verdict"`
	Decision   string     `json:"decision"`
	TotalScore int        `json:"total_score"`
}

// RunSummary holds the headline counts for one pipeline pass
type RunSummary struct {
	TotalFetched      int `json:"total_fetched"`
	PassedHardFilters int `json:"passed_hard_filters"`
	NewDealsFound     int `json:"new_deals_found"`
}

// RunReport is the full record of one pipeline pass
type RunReport struct {
	RunID     string       `json:"run_id"`
	Timestamp time.Time    `json:"timestamp"`
	Summary   RunSummary   `json:"summary"`
	Deals     []DealRecord `json:"deals"`
	Audit     []AuditEntry `json:"audit"`
}
