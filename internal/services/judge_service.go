package services

import (
	"context"
	"fmt"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// Scorer is the external verdict generator. Its scorecard is raw material:
// the pipeline recomputes the final decision locally and never trusts any
// verdict the scorer might volunteer.
type Scorer interface {
	Evaluate(ctx context.Context, deal *models.Deal) (*models.Scorecard, error)
}

// maxRawTextChars bounds how much repository content goes into the prompt
const maxRawTextChars = 4000

const judgeInstructions = `You are a strict AI venture capitalist writing for a top-tier tech channel.
Your job is to evaluate open-source projects and write a deep, analytical investment memo.

### SCORING CRITERIA (0-10)
1. NOVELTY: Is this a new approach? (0=Copy/Wrapper, 10=Groundbreaking)
2. MARKET LEVERAGE: Is the market huge? (0=Niche/Toy, 10=Global B2B/Infra)
3. MOAT POTENTIAL: Is it hard to copy? (0=Simple Script, 10=Deep Tech/Complex)
4. EXECUTION SIGNAL: Is the engineering elite? (Look at file structure, Docker, tests)
5. TIME TO MARKET: Is it ready now?

### TASKS
1. Classify: pick a category (agents, infra, devtools, ops, evals, other) and a confidence.
2. Score: assign integer scores (0-10) for every criterion.
3. Flag: list red flags such as "wrapper", "no_user", "toy_project".
4. Draft the post (REQUIRED): a strict deep-analysis writeup with a one-sentence hook,
   the market problem, what the project actually does, why it matters, where the
   potential is, and one honest risk. No marketing fluff.`

var scorecardSchema = generateSchema[models.Scorecard]()

// JudgeService scores deals through the OpenAI structured-output API
type JudgeService struct {
	client *openai.Client
	model  string
}

func NewJudgeService(apiKey, model string) *JudgeService {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &JudgeService{
		client: &client,
		model:  model,
	}
}

// Evaluate submits one deal to the scorer and parses the structured
// scorecard. A failed call or malformed response is returned as an error;
// the caller skips the deal for this pass without recording a judgment.
func (s *JudgeService) Evaluate(ctx context.Context, deal *models.Deal) (*models.Scorecard, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "Scorecard",
			Schema:      scorecardSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Investment scorecard JSON"),
			Type:        "json_schema",
		},
	}

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(buildDealPrompt(deal), responses.EasyInputMessageRoleUser),
	}
	params := responses.ResponseNewParams{
		Model:           s.model,
		Temperature:     openai.Float(0),
		MaxOutputTokens: openai.Int(2000),
		Instructions:    openai.String(judgeInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, s.client, params)
	if err != nil {
		return nil, fmt.Errorf("scorer call failed: %w", err)
	}

	var card models.Scorecard
	if err := decodeModelJSON(resp.OutputText(), &card); err != nil {
		return nil, fmt.Errorf("malformed scorer response: %w", err)
	}

	if err := validateScorecard(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

func buildDealPrompt(deal *models.Deal) string {
	rawText := deal.RawText
	if len(rawText) > maxRawTextChars {
		rawText = rawText[:maxRawTextChars]
	}

	return fmt.Sprintf(`Analyze this project:
Title: %s
Description: %s
URL: %s

Hard Metrics:
- Stars: %d (+%d today)
- Age: %d days

Production Signals:
- Docker: %t, CI: %t
- Score: %d

Raw Content:
%s`,
		deal.Title, deal.DescriptionText(), deal.URL,
		deal.Metrics.StarsTotal, deal.Metrics.Stars24h, deal.Metrics.AgeDays,
		deal.Signals.HasDocker, deal.Signals.HasCI, deal.Signals.Total,
		rawText,
	)
}

func validateScorecard(card *models.Scorecard) error {
	for name, score := range map[string]int{
		"novelty":          card.Novelty,
		"market_leverage":  card.MarketLeverage,
		"moat_potential":   card.MoatPotential,
		"execution_signal": card.ExecutionSignal,
		"time_to_market":   card.TimeToMarket,
	} {
		if score < 0 || score > 10 {
			return fmt.Errorf("scorecard %s out of range: %d", name, score)
		}
	}
	if card.CategoryConfidence < 0 || card.CategoryConfidence > 1 {
		return fmt.Errorf("scorecard confidence out of range: %f", card.CategoryConfidence)
	}
	if card.PreviewPost == "" {
		return fmt.Errorf("scorecard missing preview post")
	}
	return nil
}
