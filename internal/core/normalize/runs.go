package normalize

import (
	"strings"
	"unicode"
)

// squashRuns keeps at most max consecutive copies of any rune
func squashRuns(s string, max int) string {
	if s == "" || max < 1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	count := 0
	for i, r := range s {
		if i > 0 && r == prev {
			count++
			if count <= max {
				b.WriteRune(r)
			}
			continue
		}
		prev = r
		count = 1
		b.WriteRune(r)
	}
	return b.String()
}

// IsSpace reports whether r is whitespace. The file, group, record and unit
// separators U+001C..U+001F count as whitespace too
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Trim drops leading and trailing IsSpace runes
func Trim(s string) string { return strings.TrimFunc(s, IsSpace) }

// collapseSpaces turns every whitespace run, newlines included, into one ASCII space
// and trims both edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
