package filter

import (
	"muzzle/internal/core/wordlist"
)

// RuleSet is an immutable ordered sequence of rules.
// Word rules come first in wordlist order, lookalikes follow in theirs
type RuleSet struct {
	rules []Rule
}

// NewRuleSet compiles words with Compile and lookalikes with CompilePattern.
// Words are not checked for emptiness here; wordlist loaders reject blanks
func NewRuleSet(words, lookalikes []string) (RuleSet, error) {
	rules := make([]Rule, 0, len(words)+len(lookalikes))
	for _, w := range words {
		rules = append(rules, Compile(w))
	}
	for _, p := range lookalikes {
		r, err := CompilePattern(p)
		if err != nil {
			return RuleSet{}, err
		}
		rules = append(rules, r)
	}
	return RuleSet{rules: rules}, nil
}

// CompileWordlist builds the rule set for a loaded wordlist
func CompileWordlist(wl *wordlist.Wordlist) (RuleSet, error) {
	if wl == nil {
		return RuleSet{}, nil
	}
	return NewRuleSet(wl.Words, wl.Lookalikes)
}

// Of wraps already compiled rules, keeping their order
func Of(rules ...Rule) RuleSet {
	return RuleSet{rules: append([]Rule(nil), rules...)}
}

// Len is the number of rules
func (rs RuleSet) Len() int { return len(rs.rules) }

// At returns the i-th rule
func (rs RuleSet) At(i int) Rule { return rs.rules[i] }

// Rules returns a copy of the rules in application order
func (rs RuleSet) Rules() []Rule { return append([]Rule(nil), rs.rules...) }

// Sources lists rule sources in order
func (rs RuleSet) Sources() []string {
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Source
	}
	return out
}
