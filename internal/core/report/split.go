package report

import (
	"fmt"
	"strings"

	"muzzle/internal/core/normalize"
)

// SplitMode decides how one input document becomes report entries
type SplitMode string

const (
	// SplitWhole keeps the document as a single entry
	SplitWhole SplitMode = "whole"
	// SplitLines makes one entry per line
	SplitLines SplitMode = "lines"
	// SplitParagraphs makes one entry per blank line separated block
	SplitParagraphs SplitMode = "paragraphs"
)

// ParseSplitMode accepts the mode names; "" means whole
func ParseSplitMode(s string) (SplitMode, error) {
	switch m := SplitMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", SplitWhole:
		return SplitWhole, nil
	case SplitLines, SplitParagraphs:
		return m, nil
	default:
		return "", fmt.Errorf("report: unknown split mode %q", s)
	}
}

// Split cuts text per mode. Entries are not trimmed here; Build does that
// and skips the blank ones
func Split(text string, mode SplitMode) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	switch mode {
	case SplitLines:
		return strings.Split(text, "\n")
	case SplitParagraphs:
		var (
			out []string
			cur []string
		)
		for _, ln := range strings.Split(text, "\n") {
			if normalize.Trim(ln) == "" {
				if len(cur) > 0 {
					out = append(out, strings.Join(cur, "\n"))
					cur = cur[:0]
				}
				continue
			}
			cur = append(cur, ln)
		}
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
		}
		return out
	default:
		return []string{text}
	}
}
