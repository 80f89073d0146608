package faq

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the Ratcliff/Obershelp similarity 2*M/T of a and b, computed over runes.
// Identical strings (including two empty ones) score 1.0 and strings without a common
// rune score 0.0.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// FindBestMatch scans every record and returns the one whose lower-cased question is most
// similar to the lower-cased query. Equal scores keep the earlier record. The best record
// only counts as a match when its score reaches threshold.
func FindBestMatch(query string, records []Record, threshold float64) MatchResult {
	q := strings.ToLower(query)
	var (
		best    MatchResult
		highest float64
	)
	for _, rec := range records {
		score := Ratio(q, strings.ToLower(rec.Question))
		if score > highest {
			highest = score
			best = MatchResult{Record: rec, Score: score, Found: true}
		}
	}
	if !best.Found || highest < threshold {
		return MatchResult{}
	}
	return best
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
