package faq

import (
	"time"

	"github.com/yanqian/campus-faqbot/pkg/metrics"
)

// Record is a curated question/answer pair from the knowledge base.
type Record struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// AdminContact is the human the bot refers users to.
type AdminContact struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// IsZero reports whether the contact carries no usable identity.
func (c AdminContact) IsZero() bool {
	return c.Name == "" || c.Email == ""
}

// MatchResult is the outcome of similarity matching. Found is false for "no match".
type MatchResult struct {
	Record Record
	Score  float64
	Found  bool
}

// Source identifies which phase produced a reply.
type Source string

const (
	// SourceFAQ is a stored answer selected by similarity.
	SourceFAQ Source = "faq"
	// SourceAI is a fresh answer from the generative provider.
	SourceAI Source = "ai"
	// SourceCache is a previously generated provider answer.
	SourceCache Source = "cache"
	// SourceAIUnavailable is the apology returned when the provider failed.
	SourceAIUnavailable Source = "ai_unavailable"
	// SourceRefusal is the out-of-domain refusal.
	SourceRefusal Source = "refusal"
	// SourceError is the generic failure reply.
	SourceError Source = "error"
)

// Request carries the user's chat message.
type Request struct {
	Message string `json:"message"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Reply           string              `json:"reply"`
	Source          Source              `json:"source"`
	MatchedQuestion string              `json:"matchedQuestion,omitempty"`
	Score           float64             `json:"score,omitempty"`
	DurationMs      int64               `json:"durationMs"`
	TokenUsage      *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Completion is the provider's answer to a prompt.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// AnswerRecord captures a generated answer persisted in the KV cache.
type AnswerRecord struct {
	Key       string    `json:"key"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}
