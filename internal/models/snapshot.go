package models

import "time"

// Snapshot is one observation of a repository's popularity counters.
// Snapshots are append-only; rows are never mutated or deleted.
type Snapshot struct {
	RepoURL    string    `json:"repo_url"`
	Stars      int       `json:"stars"`
	Forks      int       `json:"forks"`
	RecordedAt time.Time `json:"recorded_at"`
}
