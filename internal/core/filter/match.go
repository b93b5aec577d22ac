package filter

import (
	"muzzle/internal/core/normalize"
)

// Hit spans are [start,end) byte offsets over the normalized input
type Hit struct {
	Index  int      `json:"index"  example:"0"`
	Source string   `json:"source" example:"씨발"`
	Kind   Kind     `json:"kind"   example:"word"`
	Spans  [][2]int `json:"spans"`
}

// HasMatch normalizes text and reports whether any rule matches.
// It stops at the first rule that hits
func HasMatch(text string, rs RuleSet) bool {
	return hasMatchNormalized(normalize.Normalize(text), rs)
}

// Mask normalizes text and replaces matches with token, rule by rule.
// Each pass works on the output of the previous one, so a later rule can
// match across a token written by an earlier rule
func Mask(text string, rs RuleSet, token string) string {
	return maskNormalized(normalize.Normalize(text), rs, token)
}

// Find normalizes text and reports every rule that matches, in rule order.
// Unlike Mask, all rules see the same normalized text
func Find(text string, rs RuleSet) []Hit {
	return findNormalized(normalize.Normalize(text), rs)
}

func hasMatchNormalized(norm string, rs RuleSet) bool {
	for _, r := range rs.rules {
		if r.Match(norm) {
			return true
		}
	}
	return false
}

func maskNormalized(norm string, rs RuleSet, token string) string {
	out := norm
	for _, r := range rs.rules {
		out = r.replace(out, token)
	}
	return out
}

func findNormalized(norm string, rs RuleSet) []Hit {
	var hits []Hit
	for i, r := range rs.rules {
		sp := r.spans(norm)
		if len(sp) == 0 {
			continue
		}
		hits = append(hits, Hit{Index: i, Source: r.Source, Kind: r.Kind, Spans: sp})
	}
	return hits
}
