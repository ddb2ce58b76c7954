// Package ai wraps the OpenAI API for chat completion and embeddings.
// When no API key is configured the rest of the application degrades to
// context-package mode, so constructing a client is always optional.
package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultModel is used when the config does not name one.
	DefaultModel = "gpt-4o-mini"

	// EmbeddingModel is the model behind the semantic search index.
	EmbeddingModel = openai.EmbeddingModelTextEmbedding3Small
)

// gpt-4o-mini pricing per 1M tokens, used for the cost note on
// generation results.
const (
	inputCostPerMTok  = 0.15
	outputCostPerMTok = 0.60
)

// Embedder is the embedding surface the search index depends on. Tests
// substitute a deterministic implementation.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Client is a thin wrapper over the OpenAI SDK carrying the configured
// model.
type Client struct {
	api   openai.Client
	model string
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a client with the given API key. An empty key falls
// back to the OPENAI_API_KEY environment variable; if that is empty too,
// an error is returned and callers should use context-package mode.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (config, environment, or credential store)")
	}

	c := &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured chat model name.
func (c *Client) Model() string {
	return c.model
}

// Usage reports token consumption for one chat completion.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
}

// EstimatedCost returns the estimated dollar cost at gpt-4o-mini rates.
func (u Usage) EstimatedCost() float64 {
	return (float64(u.PromptTokens)*inputCostPerMTok + float64(u.CompletionTokens)*outputCostPerMTok) / 1_000_000
}

// CostNote formats the usage line appended to generation results. Empty
// usage yields an empty string.
func (u Usage) CostNote() string {
	if u.PromptTokens == 0 && u.CompletionTokens == 0 {
		return ""
	}
	return fmt.Sprintf("tokens: %d in / %d out / est $%.4f", u.PromptTokens, u.CompletionTokens, u.EstimatedCost())
}

// ChatOptions bound one chat completion call.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int64
}

// Chat runs a single system+user completion and returns the assistant
// text with token usage.
func (c *Client) Chat(ctx context.Context, system, user string, opts ChatOptions) (string, Usage, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(opts.MaxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", Usage{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("chat completion returned no choices")
	}

	usage := Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	return resp.Choices[0].Message.Content, usage, nil
}

// Embed returns one embedding vector per input text, in order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: EmbeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		out[d.Index] = vec
	}
	return out, nil
}
