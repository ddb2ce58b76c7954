package ai

import (
	"github.com/pkoukk/tiktoken-go"
)

// text-embedding-3-small pricing per 1M tokens.
const embeddingCostPerMTok = 0.02

// EmbeddingCost returns the estimated dollar cost of embedding the given
// token count.
func EmbeddingCost(tokens int) float64 {
	return float64(tokens) * embeddingCostPerMTok / 1_000_000
}

// EstimateTokens counts the tokens a prompt will consume, falling back
// to a rough character heuristic when the tokenizer data is unavailable
// (offline machines).
func EstimateTokens(text, model string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}
