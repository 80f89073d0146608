package faq

import "strings"

// TopicGate decides whether an unmatched query is about the institution.
type TopicGate struct {
	keywords []string
}

// NewTopicGate lower-cases the keyword list and drops blank entries.
func NewTopicGate(keywords []string) TopicGate {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.TrimSpace(kw) == "" {
			continue
		}
		cleaned = append(cleaned, kw)
	}
	return TopicGate{keywords: cleaned}
}

// IsInDomain reports whether the lower-cased query contains any keyword as a substring.
func (g TopicGate) IsInDomain(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return false
	}
	for _, kw := range g.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
