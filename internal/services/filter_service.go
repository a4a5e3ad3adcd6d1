package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/config"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/logger"
)

// FilterResult is the outcome of pushing one candidate through the gate
// chain. Exactly one of Admitted, Skipped, or a rejection Reason applies.
type FilterResult struct {
	Admitted bool
	Skipped  bool
	Reason   string
	Detail   string
	Growth   models.GrowthDelta
	Signals  models.ProductionSignals
}

// gateState carries per-candidate scratch values between gates
type gateState struct {
	now    time.Time
	growth models.GrowthDelta
}

// verdict is a gate's non-pass outcome; nil means the gate passed
type verdict struct {
	skip   bool
	reason string
	detail string
}

type gate struct {
	name  string
	check func(c *models.Candidate, st *gateState) (*verdict, error)
}

// Gate names, in execution order
const (
	GateDedup      = "dedup"
	GateIncubation = "incubation"
	GateAge        = "age"
	GateSnapshot   = "snapshot"
	GateGrowth     = "growth"
	GateKeyword    = "keyword"
	GateContent    = "content"
)

// FilterService runs the ordered admission gate chain. Gates are ordered by
// ascending cost so that a cheap local check rejects a candidate before any
// remote content fetch happens; the first failing gate stops the chain.
type FilterService struct {
	judgmentRepo *repositories.JudgmentRepository
	snapshotRepo *repositories.SnapshotRepository
	growth       *GrowthService
	signals      *SignalService
	cfg          config.FilterConfig

	gates []gate
}

func NewFilterService(
	judgmentRepo *repositories.JudgmentRepository,
	snapshotRepo *repositories.SnapshotRepository,
	growth *GrowthService,
	signals *SignalService,
	cfg config.FilterConfig,
) *FilterService {
	s := &FilterService{
		judgmentRepo: judgmentRepo,
		snapshotRepo: snapshotRepo,
		growth:       growth,
		signals:      signals,
		cfg:          cfg,
	}

	s.gates = []gate{
		{GateDedup, s.dedupGate},
		{GateIncubation, s.incubationGate},
		{GateAge, s.ageGate},
		{GateSnapshot, s.snapshotStep},
		{GateGrowth, s.growthGate},
		{GateKeyword, s.keywordGate},
		{GateContent, s.contentGate},
	}

	return s
}

// Evaluate pushes one candidate through the gate chain and, for survivors,
// attaches the extracted production signals.
func (s *FilterService) Evaluate(c *models.Candidate, now time.Time) (*FilterResult, error) {
	st := &gateState{now: now}

	for _, g := range s.gates {
		v, err := g.check(c, st)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", g.name, err)
		}
		if v == nil {
			continue
		}

		if v.skip {
			logger.WithField("repo", c.URL).Debugf("Skipping incubating candidate")
			return &FilterResult{Skipped: true, Reason: v.reason, Growth: st.growth}, nil
		}

		logger.WithField("repo", c.URL).Infof("Rejected at %s gate: %s", g.name, v.detail)
		return &FilterResult{Reason: v.reason, Detail: v.detail, Growth: st.growth}, nil
	}

	// Signal extraction always runs for survivors; it is not a gate.
	signals := s.signals.Extract(c.Files(), c.Readme())

	return &FilterResult{
		Admitted: true,
		Growth:   st.growth,
		Signals:  signals,
	}, nil
}

// IsIncubating reports whether a candidate was observed within the incubation
// window but has no judgment yet: seen recently, not yet eligible for
// re-evaluation. Distinct from "never seen" and from "already judged".
func (s *FilterService) IsIncubating(repoURL string, now time.Time) (bool, error) {
	judged, err := s.judgmentRepo.IsJudged(repoURL)
	if err != nil {
		return false, err
	}
	if judged {
		return false, nil
	}

	since := now.Add(-time.Duration(s.cfg.IncubationHours) * time.Hour)
	return s.snapshotRepo.HasRecent(repoURL, since)
}

func (s *FilterService) dedupGate(c *models.Candidate, st *gateState) (*verdict, error) {
	judged, err := s.judgmentRepo.IsJudged(c.URL)
	if err != nil {
		return nil, err
	}
	if judged {
		return &verdict{reason: models.ReasonAlreadyJudged, detail: "already judged"}, nil
	}
	return nil, nil
}

func (s *FilterService) incubationGate(c *models.Candidate, st *gateState) (*verdict, error) {
	// The dedup gate already ruled out judged candidates, so a recent
	// snapshot alone means mid-incubation.
	since := st.now.Add(-time.Duration(s.cfg.IncubationHours) * time.Hour)
	recent, err := s.snapshotRepo.HasRecent(c.URL, since)
	if err != nil {
		return nil, err
	}
	if recent {
		return &verdict{skip: true, reason: models.ReasonIncubating}, nil
	}
	return nil, nil
}

func (s *FilterService) ageGate(c *models.Candidate, st *gateState) (*verdict, error) {
	ageDays := c.AgeDays(st.now)
	if ageDays < s.cfg.MinAgeDays {
		return &verdict{reason: models.ReasonTooYoung, detail: fmt.Sprintf("only %d days old", ageDays)}, nil
	}
	if ageDays > s.cfg.MaxAgeDays {
		return &verdict{reason: models.ReasonTooOld, detail: fmt.Sprintf("%d days old", ageDays)}, nil
	}
	return nil, nil
}

// snapshotStep records this pass's observation before growth is computed, so
// a brand-new candidate starts its history even if a later gate rejects it.
// Not a gate: it never fails a candidate.
func (s *FilterService) snapshotStep(c *models.Candidate, st *gateState) (*verdict, error) {
	if err := s.snapshotRepo.Record(c.URL, c.Stars, c.Forks, st.now); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *FilterService) growthGate(c *models.Candidate, st *gateState) (*verdict, error) {
	growth, err := s.growth.Deltas(c.URL, c.Stars, c.Forks, st.now)
	if err != nil {
		return nil, err
	}
	st.growth = growth

	// Without a true windowed sample, total stars stand in as an effective
	// growth proxy. Filtering only; reports always carry the real delta.
	effective := growth.Stars
	if !growth.IsWindowed() {
		effective = c.Stars
	}

	daysSincePush := c.DaysSincePush(st.now)
	isActive := daysSincePush <= s.cfg.ActivityThresholdDays
	isViral := effective >= s.cfg.ViralThreshold

	if !isActive && !isViral {
		detail := fmt.Sprintf("inactive (%dd since push) and not viral (+%d stars)", daysSincePush, effective)
		return &verdict{reason: models.ReasonNotTrending, detail: detail}, nil
	}
	return nil, nil
}

func (s *FilterService) keywordGate(c *models.Candidate, st *gateState) (*verdict, error) {
	// Name and description first; the README fetch is the expensive path
	// and only happens when the cheap text misses.
	meta := strings.ToLower(c.Title + " " + c.DescriptionText())
	if containsAny(meta, s.cfg.TargetKeywords) {
		return nil, nil
	}

	readme := strings.ToLower(c.Readme())
	if containsAny(readme, s.cfg.TargetKeywords) {
		return nil, nil
	}

	return &verdict{reason: models.ReasonNoKeywords, detail: "no target keywords in name, description, or readme"}, nil
}

func (s *FilterService) contentGate(c *models.Candidate, st *gateState) (*verdict, error) {
	readme := c.Readme()
	if len(readme) < s.cfg.ReadmeMinLength {
		detail := fmt.Sprintf("readme too short (%d chars)", len(readme))
		return &verdict{reason: models.ReasonWeakContent, detail: detail}, nil
	}

	lower := strings.ToLower(readme)
	found := 0
	for _, keyword := range s.cfg.ReadmeKeywords {
		if strings.Contains(lower, keyword) {
			found++
		}
	}
	if found < s.cfg.ReadmeMinKeywords {
		detail := fmt.Sprintf("only %d quality keywords in readme", found)
		return &verdict{reason: models.ReasonWeakContent, detail: detail}, nil
	}

	return nil, nil
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
