package repositories

import (
	"testing"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJudgment(url string, decision string, score int, judgedAt time.Time) *models.Judgment {
	description := "An agent orchestration framework"
	return &models.Judgment{
		RepoURL:     url,
		Title:       "agent-kit",
		Description: &description,
		StarsTotal:  500,
		Velocity:    40,
		ProdScore:   3,
		RawText:     "README: ...",
		Decision:    decision,
		Score:       score,
		JudgedAt:    judgedAt,
	}
}

func TestJudgmentLedger(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJudgmentRepository(db)

	url := "https://github.com/acme/agent-kit"
	judgedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("IsJudged is false before any judgment", func(t *testing.T) {
		judged, err := repo.IsJudged(url)
		require.NoError(t, err)
		assert.False(t, judged)
	})

	t.Run("Upsert then IsJudged", func(t *testing.T) {
		require.NoError(t, repo.Upsert(testJudgment(url, models.DecisionPublish, 21, judgedAt)))

		judged, err := repo.IsJudged(url)
		require.NoError(t, err)
		assert.True(t, judged)
	})

	t.Run("presence counts regardless of decision or score", func(t *testing.T) {
		rejected := "https://github.com/acme/weak-project"
		require.NoError(t, repo.Upsert(testJudgment(rejected, models.DecisionReject, 3, judgedAt)))

		judged, err := repo.IsJudged(rejected)
		require.NoError(t, err)
		assert.True(t, judged)
	})

	t.Run("re-insertion replaces the prior row", func(t *testing.T) {
		require.NoError(t, repo.Upsert(testJudgment(url, models.DecisionReject, 10, judgedAt.Add(time.Hour))))

		judgment, err := repo.GetByURL(url)
		require.NoError(t, err)
		require.NotNil(t, judgment)
		assert.Equal(t, models.DecisionReject, judgment.Decision)
		assert.Equal(t, 10, judgment.Score)

		judgments, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, judgments, 2)
	})

	t.Run("GetByURL is nil for unknown repo", func(t *testing.T) {
		judgment, err := repo.GetByURL("https://github.com/acme/unknown")
		require.NoError(t, err)
		assert.Nil(t, judgment)
	})

	t.Run("List orders by judgment time descending", func(t *testing.T) {
		judgments, err := repo.List()
		require.NoError(t, err)
		require.Len(t, judgments, 2)
		assert.Equal(t, url, judgments[0].RepoURL)
	})
}
