package repositories

import (
	"database/sql"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
)

// JudgmentRepository stores the at-most-once final adjudication per
// repository. Presence of a row is the dedup signal regardless of its score.
type JudgmentRepository struct {
	db *sql.DB
}

func NewJudgmentRepository(db *sql.DB) *JudgmentRepository {
	return &JudgmentRepository{db: db}
}

// IsJudged reports whether a repository already has a final judgment
func (r *JudgmentRepository) IsJudged(repoURL string) (bool, error) {
	query := `SELECT 1 FROM judgments WHERE repo_url = ? LIMIT 1`

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

// Upsert writes a judgment keyed by repository URL, replacing any prior row
func (r *JudgmentRepository) Upsert(judgment *models.Judgment) error {
	query := `
		INSERT OR REPLACE INTO judgments (
			repo_url, title, description, stars_total, velocity,
			prod_score, raw_text, decision, score, judged_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		judgment.RepoURL, judgment.Title, judgment.Description, judgment.StarsTotal,
		judgment.Velocity, judgment.ProdScore, judgment.RawText, judgment.Decision,
		judgment.Score, judgment.JudgedAt.UTC(),
	)

	return err
}

// GetByURL retrieves a judgment by repository URL, or nil if none exists
func (r *JudgmentRepository) GetByURL(repoURL string) (*models.Judgment, error) {
	query := `
		SELECT repo_url, title, description, stars_total, velocity,
			   prod_score, raw_text, decision, score, judged_at
		FROM judgments WHERE repo_url = ?
	`

	judgment := &models.Judgment{}
	err := r.db.QueryRow(query, repoURL).Scan(
		&judgment.RepoURL, &judgment.Title, &judgment.Description, &judgment.StarsTotal,
		&judgment.Velocity, &judgment.ProdScore, &judgment.RawText, &judgment.Decision,
		&judgment.Score, &judgment.JudgedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return judgment, nil
}

// List retrieves all judgments, most recent first
func (r *JudgmentRepository) List() ([]*models.Judgment, error) {
	query := `
		SELECT repo_url, title, description, stars_total, velocity,
			   prod_score, raw_text, decision, score, judged_at
		FROM judgments
		ORDER BY judged_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var judgments []*models.Judgment
	for rows.Next() {
		judgment := &models.Judgment{}
		err := rows.Scan(
			&judgment.RepoURL, &judgment.Title, &judgment.Description, &judgment.StarsTotal,
			&judgment.Velocity, &judgment.ProdScore, &judgment.RawText, &judgment.Decision,
			&judgment.Score, &judgment.JudgedAt,
		)
		if err != nil {
			return nil, err
		}
		judgments = append(judgments, judgment)
	}

	return judgments, rows.Err()
}
