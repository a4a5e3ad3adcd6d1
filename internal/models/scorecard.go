package models

// Scorecard is the structured verdict returned by the external scorer.
//
// It deliberately carries no decision field: the publish/reject call is
// recomputed locally from the sub-scores, so there is nothing here to
// mistakenly trust. The jsonschema tags drive the response schema sent to
// the model.
type Scorecard struct {
	Novelty            int      `json:"novelty" jsonschema:"minimum=0,maximum=10,description=Is this a new approach? 0=wrapper/copy 10=groundbreaking"`
	MarketLeverage     int      `json:"market_leverage" jsonschema:"minimum=0,maximum=10,description=Is the market huge? 0=niche/toy 10=global infra/B2B"`
	MoatPotential      int      `json:"moat_potential" jsonschema:"minimum=0,maximum=10,description=Is it hard to copy? 0=simple script 10=deep tech"`
	ExecutionSignal    int      `json:"execution_signal" jsonschema:"minimum=0,maximum=10,description=Is the engineering elite? Look at file structure/Docker/tests"`
	TimeToMarket       int      `json:"time_to_market" jsonschema:"minimum=0,maximum=10,description=Is it ready now? 0=concept only 10=production ready"`
	CategoryGuess      string   `json:"category_guess" jsonschema:"description=Pick one: agents infra devtools ops evals other"`
	CategoryConfidence float64  `json:"category_confidence" jsonschema:"minimum=0,maximum=1,description=Classification confidence 0.0-1.0"`
	RejectFlags        []string `json:"reject_flags" jsonschema:"description=Red flags such as wrapper no_user toy_project"`
	OneLineReason      string   `json:"one_line_reason" jsonschema:"description=One sentence explaining the verdict"`
	PreviewPost        string   `json:"preview_post" jsonschema:"description=Draft publish post. Required even for weak projects"`
}

// CoreScore is the locally-trusted investment score: the sum of the three
// sub-scores the publish rule is defined over.
func (s *Scorecard) CoreScore() int {
	return s.Novelty + s.MarketLeverage + s.MoatPotential
}
