// Package filter compiles wordlists into noise tolerant rules and applies them to text.
//
// A word rule matches the literal runes of a word in order while allowing up to
// three noise runes between each pair. Noise is whitespace, underscore or
// anything that is not a letter or digit, so "씨.발", "씨  발" and "씨_발" all
// match "씨발".
// Lookalike rules are hand written patterns appended after the word rules.
// All rules are case insensitive and are applied in construction order
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// NoiseConnector sits between every pair of escaped word runes.
// RE2 \W is ASCII only, so the negated Unicode class keeps Hangul a word rune.
// Underscore is not a letter or digit and therefore counts as noise
const NoiseConnector = `(?:\s|[^\p{L}\p{N}]){0,3}`

const caseInsensitive = "(?i)"

// Kind tells where a rule came from
type Kind uint8

const (
	// KindWord is compiled from a literal wordlist entry
	KindWord Kind = iota
	// KindLookalike is compiled directly from pattern source
	KindLookalike
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindLookalike:
		return "lookalike"
	default:
		return "unknown"
	}
}

// MarshalText lets Kind render as its name in JSON
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Rule is one compiled matcher. It is immutable and safe for concurrent use
type Rule struct {
	Source string
	Kind   Kind
	re     *regexp.Regexp
}

// Compile builds the fuzzy rule for a literal word.
// An empty word yields a rule that matches the empty string everywhere
func Compile(word string) Rule {
	parts := make([]string, 0, len(word))
	for _, r := range word {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	pattern := caseInsensitive + strings.Join(parts, NoiseConnector)
	return Rule{
		Source: word,
		Kind:   KindWord,
		re:     regexp.MustCompile(pattern),
	}
}

// CompilePattern builds a lookalike rule from pattern source such as `1\s*8`
func CompilePattern(src string) (Rule, error) {
	re, err := regexp.Compile(caseInsensitive + src)
	if err != nil {
		return Rule{}, fmt.Errorf("filter: compile lookalike %q: %w", src, err)
	}
	return Rule{Source: src, Kind: KindLookalike, re: re}, nil
}

// MustCompilePattern is CompilePattern for fixed patterns
func MustCompilePattern(src string) Rule {
	r, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the compiled expression
func (r Rule) Pattern() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}

// Match reports whether the rule matches anywhere in s. s is used as is
func (r Rule) Match(s string) bool {
	return r.re != nil && r.re.MatchString(s)
}

// replace substitutes every non-overlapping match with token, taken literally
func (r Rule) replace(s, token string) string {
	if r.re == nil {
		return s
	}
	return r.re.ReplaceAllLiteralString(s, token)
}

// spans returns [start,end) byte offsets of every non-overlapping match
func (r Rule) spans(s string) [][2]int {
	if r.re == nil {
		return nil
	}
	idx := r.re.FindAllStringIndex(s, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([][2]int, len(idx))
	for i, m := range idx {
		out[i] = [2]int{m[0], m[1]}
	}
	return out
}
