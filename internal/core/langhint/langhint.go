// Package langhint gives a coarse script guess for filtered text.
// The wordlist targets Korean, so the hint mostly tells Hangul input apart from
// Latin or digit substitutions
package langhint

import "unicode"

// minLetters is the floor below which no language is reported
const minLetters = 2

// Hint summarizes the letters seen in a string
type Hint struct {
	Script  string `json:"script,omitempty"  example:"Hangul"`
	Lang    string `json:"lang,omitempty"    example:"ko"`
	Letters int    `json:"letters"           example:"12"`
	Digits  int    `json:"digits"            example:"2"`
}

// Detect counts letters by script and picks the predominant one.
// Lang is only set when Hangul or Kana make the choice unambiguous
func Detect(s string) Hint {
	var hangul, latin, han, kana, cyrillic, other, digits, total int

	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
			continue
		}
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		switch {
		case unicode.In(r, unicode.Hangul):
			hangul++
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.In(r, unicode.Han):
			han++
		case unicode.In(r, unicode.Cyrillic):
			cyrillic++
		case unicode.In(r, unicode.Latin):
			latin++
		default:
			other++
		}
	}

	// tie-break prefers the earlier, more specific script
	cands := []struct {
		name string
		cnt  int
	}{
		{"Hangul", hangul},
		{"Kana", kana},
		{"Han", han},
		{"Cyrillic", cyrillic},
		{"Latin", latin},
		{"Other", other},
	}
	h := Hint{Letters: total, Digits: digits}
	best := 0
	for _, c := range cands {
		if c.cnt > best {
			best = c.cnt
			h.Script = c.name
		}
	}

	if total >= minLetters {
		switch {
		case kana > 0:
			h.Lang = "ja"
		case hangul > 0:
			h.Lang = "ko"
		}
	}
	return h
}

// IsHangul reports whether Hangul is the predominant script of s
func IsHangul(s string) bool { return Detect(s).Script == "Hangul" }
