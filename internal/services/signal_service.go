package services

import (
	"strings"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
)

// SignalService derives production-readiness signals from a repository's root
// file listing and README text. Missing inputs yield all-false/zero signals,
// never an error.
type SignalService struct {
	productionKeywords []string
}

func NewSignalService(productionKeywords []string) *SignalService {
	return &SignalService{productionKeywords: productionKeywords}
}

// Extract computes the signals for one candidate. Each operational keyword is
// counted at most once no matter how often it repeats in the text.
func (s *SignalService) Extract(files []string, readme string) models.ProductionSignals {
	text := strings.ToLower(readme)

	hasDocker := false
	hasCI := false
	for _, path := range files {
		lower := strings.ToLower(path)
		if strings.Contains(lower, "docker") {
			hasDocker = true
		}
		if strings.Contains(path, ".github/workflows") || strings.Contains(path, ".circleci") {
			hasCI = true
		}
	}

	keywordCount := 0
	for _, keyword := range s.productionKeywords {
		if strings.Contains(text, keyword) {
			keywordCount++
		}
	}

	total := keywordCount
	if hasDocker {
		total++
	}
	if hasCI {
		total++
	}

	return models.ProductionSignals{
		HasDocker:    hasDocker,
		HasCI:        hasCI,
		KeywordCount: keywordCount,
		Total:        total,
		Category:     "other",
	}
}
