package repositories

import (
	"database/sql"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
)

// SnapshotRepository is the append-only ledger of popularity observations.
// Rows are inserted once per candidate per pipeline pass and never mutated.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Record appends a snapshot row. The (repo_url, recorded_at) primary key
// makes an accidental duplicate insert within the same instant an upsert
// rather than an error.
func (r *SnapshotRepository) Record(repoURL string, stars, forks int, recordedAt time.Time) error {
	query := `
		INSERT OR REPLACE INTO star_history (repo_url, stars, forks, recorded_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, repoURL, stars, forks, recordedAt.UTC())
	return err
}

// Earliest retrieves the first-ever snapshot for a repository, or nil if the
// repository has never been observed.
func (r *SnapshotRepository) Earliest(repoURL string) (*models.Snapshot, error) {
	query := `
		SELECT repo_url, stars, forks, recorded_at
		FROM star_history WHERE repo_url = ?
		ORDER BY recorded_at ASC LIMIT 1
	`

	return r.scanOne(query, repoURL)
}

// LatestInWindow retrieves the most recent snapshot recorded inside
// [start, end], or nil if the window holds no sample.
func (r *SnapshotRepository) LatestInWindow(repoURL string, start, end time.Time) (*models.Snapshot, error) {
	query := `
		SELECT repo_url, stars, forks, recorded_at
		FROM star_history
		WHERE repo_url = ? AND recorded_at BETWEEN ? AND ?
		ORDER BY recorded_at DESC LIMIT 1
	`

	return r.scanOne(query, repoURL, start.UTC(), end.UTC())
}

// HasAny reports whether any snapshot exists for a repository
func (r *SnapshotRepository) HasAny(repoURL string) (bool, error) {
	query := `SELECT 1 FROM star_history WHERE repo_url = ? LIMIT 1`

	var one int
	err := r.db.QueryRow(query, repoURL).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasRecent reports whether a snapshot strictly newer than since exists,
// which classifies a repository as still incubating.
func (r *SnapshotRepository) HasRecent(repoURL string, since time.Time) (bool, error) {
	query := `SELECT 1 FROM star_history WHERE repo_url = ? AND recorded_at > ? LIMIT 1`

	var one int
	err := r.db.QueryRow(query, repoURL, since.UTC()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SnapshotRepository) scanOne(query string, args ...interface{}) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{}
	err := r.db.QueryRow(query, args...).Scan(
		&snapshot.RepoURL, &snapshot.Stars, &snapshot.Forks, &snapshot.RecordedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}
