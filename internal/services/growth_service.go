package services

import (
	"fmt"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
)

// The canonical lookback window is deliberately wider than 24h so that an
// irregular run cadence still finds "yesterday's" snapshot.
const (
	windowNear = 18 * time.Hour
	windowFar  = 30 * time.Hour
)

// GrowthService turns the snapshot history into a growth figure usable as an
// admission signal, with an explicit fallback when history is incomplete.
type GrowthService struct {
	snapshotRepo *repositories.SnapshotRepository
}

func NewGrowthService(snapshotRepo *repositories.SnapshotRepository) *GrowthService {
	return &GrowthService{snapshotRepo: snapshotRepo}
}

// Deltas computes growth for both counters against the best available
// baseline. Absence of history is a normal outcome, not an error: a
// repository with no snapshot inside the window falls back to its
// earliest-ever snapshot, and a brand-new repository yields a zero fallback
// delta. Deltas are never negative.
func (s *GrowthService) Deltas(repoURL string, currentStars, currentForks int, now time.Time) (models.GrowthDelta, error) {
	sample, err := s.snapshotRepo.LatestInWindow(repoURL, now.Add(-windowFar), now.Add(-windowNear))
	if err != nil {
		return models.GrowthDelta{}, fmt.Errorf("failed to query snapshot window: %w", err)
	}

	if sample != nil {
		return models.GrowthDelta{
			Source: models.GrowthWindowed,
			Stars:  nonNegative(currentStars - sample.Stars),
			Forks:  nonNegative(currentForks - sample.Forks),
		}, nil
	}

	earliest, err := s.snapshotRepo.Earliest(repoURL)
	if err != nil {
		return models.GrowthDelta{}, fmt.Errorf("failed to query earliest snapshot: %w", err)
	}

	if earliest != nil {
		return models.GrowthDelta{
			Source: models.GrowthFallback,
			Stars:  nonNegative(currentStars - earliest.Stars),
			Forks:  nonNegative(currentForks - earliest.Forks),
		}, nil
	}

	return models.GrowthDelta{Source: models.GrowthFallback}, nil
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
