package faq

import "time"

const (
	// DefaultSimilarityThreshold is the minimum ratio for a stored question to match.
	DefaultSimilarityThreshold = 0.75
	// DefaultInstitution names the college the assistant is bound to.
	DefaultInstitution = "Global Academy of Technology"
	// DefaultLocation is appended to the persona line of the provider prompt.
	DefaultLocation = "Bangalore, Karnataka"
)

// DefaultKeywords is the topicality list used when none is configured.
var DefaultKeywords = []string{
	"college", "admission", "fee", "course", "department", "faculty",
	"placement", "exam", "result", "principal", "library", "hostel",
	"hod", "infrastructure", "attendance", "student", "syllabus",
	"academic", "canteen", "transport", "scholarship", "campus",
	"mba", "b.e", "engineering", "gate", "mechanical", "computer science",
}

// Config holds runtime knobs for the FAQ service.
type Config struct {
	Institution         string
	Location            string
	SimilarityThreshold float64
	Keywords            []string
	// FallbackContact is used in the error reply when the stored contact cannot be read.
	FallbackContact    AdminContact
	CacheTTL           time.Duration
	TopRecommendations int
	ProviderTimeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Institution == "" {
		c.Institution = DefaultInstitution
	}
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.Keywords == nil {
		c.Keywords = DefaultKeywords
	}
	return c
}
