package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yanqian/campus-faqbot/pkg/metrics"
)

var errEmptyCompletion = errors.New("provider returned empty text")

// Generator is the external generative-text provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// fallbackOutcome is the result of a single provider attempt. A failed outcome still
// carries the apology as its reply.
type fallbackOutcome struct {
	reply  string
	usage  *metrics.TokenUsage
	failed bool
	err    error
}

func (s *service) askExternal(ctx context.Context, query string, contact AdminContact) (out fallbackOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackOutcome{reply: AIUnavailableMessage, failed: true, err: fmt.Errorf("provider panic: %v", r)}
		}
	}()

	if s.cfg.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ProviderTimeout)
		defer cancel()
	}

	completion, err := s.generator.Generate(ctx, buildPrompt(s.cfg, query, contact))
	if err != nil {
		return fallbackOutcome{reply: AIUnavailableMessage, failed: true, err: err}
	}
	text := strings.TrimSpace(completion.Text)
	if text == "" {
		return fallbackOutcome{reply: AIUnavailableMessage, failed: true, err: errEmptyCompletion}
	}
	out = fallbackOutcome{reply: text}
	if !completion.Usage.IsZero() {
		usage := completion.Usage.Normalize()
		out.usage = &usage
	}
	return out
}
