package llm

import (
	"regexp"
	"strings"
)

// ModelCost is the price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// snapshotSuffix matches dated model snapshots such as "-20251001" or
// "-2024-08-06".
var snapshotSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2})$`)

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter IDs ("openai/gpt-4o") and dated snapshots resolve to their base
// model.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	id = strings.TrimSuffix(id, ":free")
	if _, rest, ok := strings.Cut(id, "/"); ok {
		id = rest
	}
	for _, candidate := range []string{id, snapshotSuffix.ReplaceAllString(id, "")} {
		if c, ok := modelCosts[candidate]; ok {
			return &c
		}
	}
	return nil
}

// EstimateCost prices a call. ok is false for models without pricing.
func EstimateCost(modelID string, inputTokens, outputTokens int) (usd float64, ok bool) {
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(inputTokens, outputTokens), true
}

// modelCosts covers the defaults and aliases intervue ships with plus the
// common alternatives for each provider. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// OpenAI (default provider, default model gpt-4o)
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5-mini":   {0.25, 2},

	// Anthropic (claude-haiku, claude-sonnet aliases)
	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},

	// Gemini (gemini-flash, gemini-pro aliases)
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	// OpenRouter default; free tier.
	"gemini-2.0-flash-exp": {0, 0},

	// Offline scripted provider.
	"mock": {0, 0},
}
