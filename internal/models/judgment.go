package models

import "time"

// Decision values for a final judgment
const (
	DecisionPublish = "PUBLISH"
	DecisionReject  = "REJECT"
)

// Judgment is the durable record that a repository has been finally
// adjudicated. At most one row exists per repository URL; its presence alone
// means the repository is never re-submitted to the scorer.
type Judgment struct {
	RepoURL     string    `json:"repo_url"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StarsTotal  int       `json:"stars_total"`
	Velocity    int       `json:"velocity"`
	ProdScore   int       `json:"prod_score"`
	RawText     string    `json:"raw_text"`
	Decision    string    `json:"decision"`
	Score       int       `json:"score"`
	JudgedAt    time.Time `json:"judged_at"`
}

// NewJudgment creates a Judgment for a scored deal
func NewJudgment(deal *Deal, decision string, score int, judgedAt time.Time) *Judgment {
	return &Judgment{
		RepoURL:     deal.URL,
		Title:       deal.Title,
		Description: deal.Description,
		StarsTotal:  deal.Metrics.StarsTotal,
		Velocity:    deal.Metrics.Stars24h,
		ProdScore:   deal.Signals.Total,
		RawText:     deal.RawText,
		Decision:    decision,
		Score:       score,
		JudgedAt:    judgedAt,
	}
}
