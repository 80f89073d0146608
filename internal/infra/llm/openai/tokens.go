package openai

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/campus-faqbot/pkg/metrics"
)

const fallbackEncoding = "cl100k_base"

// tokenCounter estimates usage for providers that do not report it. The encoding is
// resolved lazily because tiktoken may need to fetch its BPE ranks.
type tokenCounter struct {
	model string

	once sync.Once
	enc  *tiktoken.Tiktoken
}

func newTokenCounter(model string) *tokenCounter {
	return &tokenCounter{model: model}
}

func (t *tokenCounter) count(text string) int {
	t.once.Do(func() {
		enc, err := tiktoken.EncodingForModel(t.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding(fallbackEncoding)
		}
		if err == nil {
			t.enc = enc
		}
	})
	if t.enc == nil {
		return len(strings.Fields(text))
	}
	return len(t.enc.Encode(text, nil, nil))
}

func (t *tokenCounter) estimate(prompt, completion string) metrics.TokenUsage {
	usage := metrics.TokenUsage{
		PromptTokens:     t.count(prompt),
		CompletionTokens: t.count(completion),
		Estimated:        true,
	}
	return usage.Normalize()
}
