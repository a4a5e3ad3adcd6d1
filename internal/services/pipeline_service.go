package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/config"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/logger"
	"github.com/google/uuid"
)

// readmeExcerptChars bounds the README excerpt embedded in a deal's raw text
const readmeExcerptChars = 3000

// PipelineService runs one full batch pass: discover candidates, push each
// through the admission gates, score survivors, recompute the publish
// decision locally, and record the judgment. Candidates are processed
// strictly one at a time; a mid-pass interrupt loses only in-flight work.
type PipelineService struct {
	source       CandidateSource
	filter       *FilterService
	scorer       Scorer
	judgmentRepo *repositories.JudgmentRepository
	scanLimit    int
	judgeCfg     config.JudgeConfig

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewPipelineService(
	source CandidateSource,
	filter *FilterService,
	scorer Scorer,
	judgmentRepo *repositories.JudgmentRepository,
	scanLimit int,
	judgeCfg config.JudgeConfig,
) *PipelineService {
	return &PipelineService{
		source:       source,
		filter:       filter,
		scorer:       scorer,
		judgmentRepo: judgmentRepo,
		scanLimit:    scanLimit,
		judgeCfg:     judgeCfg,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Run executes one pipeline pass and returns the run report. A discovery or
// persistence failure aborts the pass; already-committed snapshot and
// judgment rows stay as they are.
func (s *PipelineService) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:     uuid.New().String(),
		Timestamp: s.now(),
	}

	candidates, err := s.source.Fetch(ctx, s.scanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	report.Summary.TotalFetched = len(candidates)

	logger.Infof("Scanning %d candidates", len(candidates))

	scored := 0
	for _, candidate := range candidates {
		result, err := s.filter.Evaluate(candidate, s.now())
		if err != nil {
			return nil, fmt.Errorf("filter failed for %s: %w", candidate.URL, err)
		}

		if result.Skipped {
			continue
		}
		if !result.Admitted {
			report.Audit = append(report.Audit, models.AuditEntry{
				URL:    candidate.URL,
				Title:  candidate.Title,
				Reason: result.Reason,
				Detail: result.Detail,
			})
			continue
		}

		report.Summary.PassedHardFilters++

		deal := models.NewDeal(candidate, result.Growth, result.Signals, buildRawText(candidate), s.now())

		// Fixed cooldown between consecutive scorer calls; the scorer's
		// request-rate ceiling is the scarce resource here.
		if scored > 0 {
			s.sleep(time.Duration(s.judgeCfg.CooldownSeconds) * time.Second)
		}

		record, err := s.judge(ctx, deal)
		scored++
		if err != nil {
			// No judgment row: the candidate stays eligible for a future pass.
			logger.WithError(err).Warnf("Scorer failed for %s, skipping this pass", deal.Title)
			continue
		}

		judgment := models.NewJudgment(deal, record.Decision, record.TotalScore, s.now())
		if err := s.judgmentRepo.Upsert(judgment); err != nil {
			return nil, fmt.Errorf("failed to record judgment for %s: %w", deal.URL, err)
		}

		if record.Decision == models.DecisionPublish {
			logger.WithFields(map[string]interface{}{
				"repo":  deal.URL,
				"score": record.TotalScore,
			}).Infof("Deal found: %s", deal.Title)
			report.Deals = append(report.Deals, *record)
		} else {
			logger.Infof("Rejected by scorecard (%d/30): %s", record.TotalScore, deal.Title)
		}
	}

	report.Summary.NewDealsFound = len(report.Deals)
	return report, nil
}

// judge scores one deal and computes the final decision. The scorer's own
// opinion of the outcome is ignored: the decision is recomputed here from
// the three core sub-scores, and a reject discards the draft post.
func (s *PipelineService) judge(ctx context.Context, deal *models.Deal) (*models.DealRecord, error) {
	card, err := s.scorer.Evaluate(ctx, deal)
	if err != nil {
		return nil, err
	}

	deal.Signals.Category = card.CategoryGuess
	deal.Signals.Confidence = card.CategoryConfidence

	score := card.CoreScore()
	decision := models.DecisionReject
	if score >= s.judgeCfg.PublishThreshold {
		decision = models.DecisionPublish
	} else {
		card.PreviewPost = ""
	}

	return &models.DealRecord{
		Project:    deal,
		Verdict:    card,
		Decision:   decision,
		TotalScore: score,
	}, nil
}

func buildRawText(c *models.Candidate) string {
	readme := c.Readme()
	if len(readme) > readmeExcerptChars {
		readme = readme[:readmeExcerptChars]
	}
	return fmt.Sprintf("README:\n%s\n\nFILE STRUCTURE:\n%s", readme, strings.Join(c.Files(), "\n"))
}
