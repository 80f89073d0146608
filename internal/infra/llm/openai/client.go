package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/campus-faqbot/internal/domain/faq"
	apperrors "github.com/yanqian/campus-faqbot/pkg/errors"
	"github.com/yanqian/campus-faqbot/pkg/metrics"
)

// ErrNotConfigured is returned by Unavailable for every prompt.
var ErrNotConfigured = errors.New("llm api key not configured")

// Options configures the provider client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// Client answers prompts through an OpenAI-compatible chat completion endpoint. Gemini is
// reachable through its OpenAI compatibility base URL.
type Client struct {
	client      *goopenai.Client
	model       string
	temperature float32
	tokens      *tokenCounter
	logger      *slog.Logger
}

// NewClient constructs a provider client.
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("llm model cannot be empty")
	}
	conf := goopenai.DefaultConfig(opts.APIKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		conf.BaseURL = strings.TrimRight(base, "/")
	}
	return &Client{
		client:      goopenai.NewClientWithConfig(conf),
		model:       opts.Model,
		temperature: opts.Temperature,
		tokens:      newTokenCounter(opts.Model),
		logger:      logger.With("component", "llm.openai"),
	}, nil
}

// Generate sends the prompt as a single user turn and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt string) (faq.Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return faq.Completion{}, apperrors.Wrap(apperrors.CodeLLM, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return faq.Completion{}, apperrors.Wrap(apperrors.CodeLLM, "chat completion returned no choices", nil)
	}
	text := resp.Choices[0].Message.Content

	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.IsZero() {
		usage = c.tokens.estimate(prompt, text)
	}
	c.logger.Debug("chat completion done", "model", c.model, "total_tokens", usage.TotalTokens, "estimated", usage.Estimated)
	return faq.Completion{Text: text, Usage: usage}, nil
}

// Unavailable stands in for the provider when no credentials are configured, so in-domain
// questions get the apology instead of failing at startup.
type Unavailable struct{}

// Generate implements faq.Generator.
func (Unavailable) Generate(context.Context, string) (faq.Completion, error) {
	return faq.Completion{}, ErrNotConfigured
}

var (
	_ faq.Generator = (*Client)(nil)
	_ faq.Generator = Unavailable{}
)
