// Package normalize canonicalizes raw text before matching
// Pipeline order
// 0 UTF-8 repair, invalid bytes become U+FFFD
// 1 Unicode NFC composition
// 2 Lowercase (no-op for caseless scripts such as Hangul)
// 3 Squash runs of 3+ identical runes down to 2 (ㅋㅋㅋㅋ -> ㅋㅋ)
// 4 Collapse whitespace runs to a single space and trim
//
// The output is only meant for matching. Callers keep the original for display.
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRepeat is how many identical consecutive runes survive step 3
const MaxRepeat = 2

// Normalizer is stateless and safe for concurrent use
type Normalizer struct{}

// pool of fresh transformer chains, cases.Caser is not safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			cases.Lower(language.Und),
		)
	},
}

var std = New()

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize runs the package pipeline with the shared Normalizer
func Normalize(s string) string { return std.Normalize(s) }

// Normalize returns the normalized form of s. It never fails
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 0 repair UTF-8
	s = strings.ToValidUTF8(s, "\uFFFD")

	// 1-2 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(norm.NFC.String(s))
	}

	// 3 squash emphasis repeats
	ns = squashRuns(ns, MaxRepeat)

	// 4 collapse whitespace and trim
	return collapseSpaces(ns)
}
