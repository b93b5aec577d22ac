package filter

import (
	"muzzle/internal/core/langhint"
	"muzzle/internal/core/normalize"
	"muzzle/internal/core/wordlist"
)

// DefaultMask replaces every match unless WithMask says otherwise
const DefaultMask = "***"

// Filter pairs a rule set with a mask token. It holds no other state
// and is safe to share between goroutines
type Filter struct {
	rules RuleSet
	mask  string
}

// Option configures a Filter
type Option func(*Filter)

// WithMask sets the replacement token; empty keeps DefaultMask
func WithMask(token string) Option {
	return func(f *Filter) {
		if token != "" {
			f.mask = token
		}
	}
}

// New builds a Filter over rs
func New(rs RuleSet, opts ...Option) *Filter {
	f := &Filter{rules: rs, mask: DefaultMask}
	for _, o := range opts {
		o(f)
	}
	return f
}

// FromWordlist compiles wl and wraps it in a Filter
func FromWordlist(wl *wordlist.Wordlist, opts ...Option) (*Filter, error) {
	rs, err := CompileWordlist(wl)
	if err != nil {
		return nil, err
	}
	return New(rs, opts...), nil
}

// Default builds a Filter from the embedded wordlist
func Default(opts ...Option) (*Filter, error) {
	wl, err := wordlist.Load()
	if err != nil {
		return nil, err
	}
	return FromWordlist(wl, opts...)
}

// HasProfanity reports whether any rule matches the normalized text
func (f *Filter) HasProfanity(text string) bool { return HasMatch(text, f.rules) }

// Clean returns the normalized text with matches replaced by the mask token
func (f *Filter) Clean(text string) string { return Mask(text, f.rules, f.mask) }

// Mask returns the replacement token
func (f *Filter) Mask() string { return f.mask }

// Rules returns the rule set
func (f *Filter) Rules() RuleSet { return f.rules }

// WithMask returns a sibling Filter sharing the same rules
func (f *Filter) WithMask(token string) *Filter {
	if token == "" || token == f.mask {
		return f
	}
	return &Filter{rules: f.rules, mask: token}
}

// Verdict is the full result of filtering one text
type Verdict struct {
	Original   string        `json:"original"   example:"이런 씨발"`
	Normalized string        `json:"normalized" example:"이런 씨발"`
	Cleaned    string        `json:"cleaned"    example:"이런 ***"`
	Profane    bool          `json:"profane"    example:"true"`
	Hits       []Hit         `json:"hits"`
	Hint       langhint.Hint `json:"hint"`
}

// Inspect normalizes once and reports the cleaned text, the verdict and the
// rules that hit. Cleaned and Profane equal Clean(text) and HasProfanity(text)
func (f *Filter) Inspect(text string) Verdict {
	norm := normalize.Normalize(text)
	hits := findNormalized(norm, f.rules)
	return Verdict{
		Original:   text,
		Normalized: norm,
		Cleaned:    maskNormalized(norm, f.rules, f.mask),
		Profane:    len(hits) > 0,
		Hits:       hits,
		Hint:       langhint.Detect(norm),
	}
}
