package models

// ProductionSignals are derived engineering-maturity indicators attached to a
// candidate for the duration of one pipeline pass.
type ProductionSignals struct {
	HasDocker    bool    `json:"has_docker"`
	HasCI        bool    `json:"has_ci"`
	KeywordCount int     `json:"keyword_count"`
	Total        int     `json:"total"`
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
}
