package services

import (
	"strings"
	"testing"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func testFilterConfig() config.FilterConfig {
	return config.FilterConfig{
		MinAgeDays:            7,
		MaxAgeDays:            90,
		ViralThreshold:        30,
		ActivityThresholdDays: 14,
		ReadmeMinLength:       800,
		ReadmeMinKeywords:     2,
		IncubationHours:       18,
		TargetKeywords:        []string{"agent", "orchestration", "rag", "eval", "infra"},
		ReadmeKeywords:        []string{"use case", "problem", "solution", "why", "example", "quickstart", "demo", "workflow"},
		ProductionKeywords:    []string{"production", "deploy", "self-hosted", "on-prem", "latency", "cost"},
	}
}

type filterHarness struct {
	service   *FilterService
	snapshots *repositories.SnapshotRepository
	judgments *repositories.JudgmentRepository
}

func newFilterHarness(t *testing.T) *filterHarness {
	db := setupTestDB(t)
	snapshots := repositories.NewSnapshotRepository(db)
	judgments := repositories.NewJudgmentRepository(db)
	cfg := testFilterConfig()

	service := NewFilterService(
		judgments, snapshots,
		NewGrowthService(snapshots),
		NewSignalService(cfg.ProductionKeywords),
		cfg,
	)

	return &filterHarness{service: service, snapshots: snapshots, judgments: judgments}
}

// goodReadme is long enough and carries two quality keywords
func goodReadme() string {
	return "## Quickstart\nHere is an example of running the agent.\n" + strings.Repeat("More detail about the runtime. ", 40)
}

func testCandidate(url string, ageDays, pushAgeDays, stars int, description string) *models.Candidate {
	return models.NewCandidate(
		url, "sample-kit", &description,
		testNow.Add(-time.Duration(ageDays)*24*time.Hour),
		testNow.Add(-time.Duration(pushAgeDays)*24*time.Hour),
		stars, stars/10,
	)
}

func TestFilterAdmitsStrongCandidate(t *testing.T) {
	h := newFilterHarness(t)

	url := "https://github.com/acme/agent-kit"
	require.NoError(t, h.snapshots.Record(url, 460, 40, testNow.Add(-24*time.Hour)))

	candidate := testCandidate(url, 10, 2, 500, "An agent framework for production workloads")
	candidate.SetLoaders(
		func() string { return goodReadme() },
		func() []string { return []string{"Dockerfile", ".github/workflows/ci.yml", "src"} },
	)

	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.True(t, result.Admitted)
	assert.Equal(t, models.GrowthWindowed, result.Growth.Source)
	assert.Equal(t, 40, result.Growth.Stars)
	assert.True(t, result.Signals.HasDocker)
	assert.True(t, result.Signals.HasCI)
}

func TestFilterRejectsByAge(t *testing.T) {
	h := newFilterHarness(t)

	t.Run("too old", func(t *testing.T) {
		readmeFetched := false
		candidate := testCandidate("https://github.com/acme/old", 120, 1, 100000, "agent")
		candidate.SetLoaders(func() string {
			readmeFetched = true
			return goodReadme()
		}, nil)

		result, err := h.service.Evaluate(candidate, testNow)
		require.NoError(t, err)

		assert.False(t, result.Admitted)
		assert.Equal(t, models.ReasonTooOld, result.Reason)
		assert.False(t, readmeFetched, "age rejection must not trigger a content fetch")
	})

	t.Run("too young", func(t *testing.T) {
		candidate := testCandidate("https://github.com/acme/new", 3, 1, 500, "agent")

		result, err := h.service.Evaluate(candidate, testNow)
		require.NoError(t, err)

		assert.False(t, result.Admitted)
		assert.Equal(t, models.ReasonTooYoung, result.Reason)
	})
}

func TestFilterRejectsStaleNonViral(t *testing.T) {
	h := newFilterHarness(t)

	// 25 total stars is below the viral threshold even as a proxy, and the
	// last push is far beyond the activity threshold.
	candidate := testCandidate("https://github.com/acme/stale", 30, 25, 25, "agent")

	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.False(t, result.Admitted)
	assert.Equal(t, models.ReasonNotTrending, result.Reason)
}

func TestFilterGrowthProxyAdmitsViralNewcomer(t *testing.T) {
	h := newFilterHarness(t)

	// No history: total stars stand in for growth, clearing the viral bar
	// despite the stale push date.
	candidate := testCandidate("https://github.com/acme/viral", 10, 25, 500, "agent toolkit")
	candidate.SetLoaders(func() string { return goodReadme() }, nil)

	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.True(t, result.Admitted)
	assert.Equal(t, models.GrowthFallback, result.Growth.Source)
	assert.Equal(t, 0, result.Growth.Stars, "the proxy must not leak into the reported delta")
}

func TestFilterRejectsMissingKeywords(t *testing.T) {
	h := newFilterHarness(t)

	candidate := testCandidate("https://github.com/acme/misc", 10, 2, 500, "a utility library")
	candidate.SetLoaders(func() string {
		return "## Quickstart\nAn example plugin for spreadsheets. " + strings.Repeat("Detail. ", 120)
	}, nil)

	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.False(t, result.Admitted)
	assert.Equal(t, models.ReasonNoKeywords, result.Reason)
}

func TestFilterRejectsWeakContent(t *testing.T) {
	h := newFilterHarness(t)

	t.Run("readme too short", func(t *testing.T) {
		candidate := testCandidate("https://github.com/acme/thin", 10, 2, 500, "agent")
		candidate.SetLoaders(func() string { return strings.Repeat("x", 300) }, nil)

		result, err := h.service.Evaluate(candidate, testNow)
		require.NoError(t, err)

		assert.False(t, result.Admitted)
		assert.Equal(t, models.ReasonWeakContent, result.Reason)
	})

	t.Run("readme long but generic", func(t *testing.T) {
		candidate := testCandidate("https://github.com/acme/generic", 10, 2, 500, "agent")
		candidate.SetLoaders(func() string { return strings.Repeat("word ", 300) }, nil)

		result, err := h.service.Evaluate(candidate, testNow)
		require.NoError(t, err)

		assert.False(t, result.Admitted)
		assert.Equal(t, models.ReasonWeakContent, result.Reason)
	})
}

func TestFilterSkipsIncubatingCandidate(t *testing.T) {
	h := newFilterHarness(t)

	url := "https://github.com/acme/fresh"
	require.NoError(t, h.snapshots.Record(url, 100, 10, testNow.Add(-2*time.Hour)))

	candidate := testCandidate(url, 10, 1, 120, "agent")

	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.False(t, result.Admitted)
	assert.Equal(t, models.ReasonIncubating, result.Reason)

	incubating, err := h.service.IsIncubating(url, testNow)
	require.NoError(t, err)
	assert.True(t, incubating)
}

func TestFilterShortCircuitsJudgedCandidate(t *testing.T) {
	h := newFilterHarness(t)

	url := "https://github.com/acme/decided"
	require.NoError(t, h.judgments.Upsert(&models.Judgment{
		RepoURL:  url,
		Title:    "decided",
		Decision: models.DecisionReject,
		Score:    5,
		JudgedAt: testNow.Add(-48 * time.Hour),
	}))

	// Wrap every gate with a call counter.
	counts := map[string]int{}
	for i := range h.service.gates {
		g := h.service.gates[i]
		h.service.gates[i].check = func(c *models.Candidate, st *gateState) (*verdict, error) {
			counts[g.name]++
			return g.check(c, st)
		}
	}

	candidate := testCandidate(url, 10, 2, 500, "agent")
	result, err := h.service.Evaluate(candidate, testNow)
	require.NoError(t, err)

	assert.False(t, result.Admitted)
	assert.Equal(t, models.ReasonAlreadyJudged, result.Reason)

	assert.Equal(t, 1, counts[GateDedup])
	assert.Zero(t, counts[GateAge], "age gate must not run for judged candidates")
	assert.Zero(t, counts[GateGrowth], "growth gate must not run for judged candidates")
	assert.Zero(t, counts[GateKeyword], "keyword gate must not run for judged candidates")

	// No judgment means incubation does not apply either.
	incubating, err := h.service.IsIncubating(url, testNow)
	require.NoError(t, err)
	assert.False(t, incubating)
}
