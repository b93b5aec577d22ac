// Package report renders batch filtering results as the plain text log
// reviewers read: one block per input with the original, the cleaned text
// and the verdict
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"muzzle/internal/core/normalize"
)

const (
	// DefaultDir and DefaultName are used by Save when left blank
	DefaultDir  = "filtered_results"
	DefaultName = "cleaned_log.txt"

	header     = "=== 욕설 필터링 결과 로그 (통문장 처리) ==="
	labelOrig  = "원문:"
	labelClean = "정제 결과:"
	labelBad   = "욕 포함?:"
	verdictBad = "True"
	verdictOK  = "정상"
	ruleWidth  = 50
)

// Cleaner is the slice of *filter.Filter a report needs
type Cleaner interface {
	Clean(text string) string
	HasProfanity(text string) bool
}

// Summary counts what a report run saw
type Summary struct {
	Total   int `json:"total"   example:"3"`
	Written int `json:"written" example:"2"`
	Skipped int `json:"skipped" example:"1"`
	Profane int `json:"profane" example:"1"`
}

// Entry is one rendered block
type Entry struct {
	Index   int    `json:"index"   example:"1"`
	Text    string `json:"text"    example:"이런 씨발"`
	Cleaned string `json:"cleaned" example:"이런 ***"`
	Profane bool   `json:"profane" example:"true"`
}

// Build runs c over texts. Blank entries are skipped but keep their index,
// so Example numbers line up with the input position (1 based)
func Build(c Cleaner, texts []string) ([]Entry, Summary) {
	sum := Summary{Total: len(texts)}
	out := make([]Entry, 0, len(texts))
	for i, raw := range texts {
		text := normalize.Trim(raw)
		if text == "" {
			sum.Skipped++
			continue
		}
		e := Entry{
			Index:   i + 1,
			Text:    text,
			Cleaned: c.Clean(text),
			Profane: c.HasProfanity(text),
		}
		if e.Profane {
			sum.Profane++
		}
		sum.Written++
		out = append(out, e)
	}
	return out, sum
}

// Write renders the report for texts into w
func Write(w io.Writer, c Cleaner, texts []string) (Summary, error) {
	entries, sum := Build(c, texts)
	return sum, Render(w, entries)
}

// Render writes already built entries
func Render(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", header)
	rule := strings.Repeat("=", ruleWidth)
	for _, e := range entries {
		verdict := verdictOK
		if e.Profane {
			verdict = verdictBad
		}
		fmt.Fprintf(bw, "[Example %d]\n", e.Index)
		fmt.Fprintf(bw, "%s\n%s\n\n", labelOrig, e.Text)
		fmt.Fprintf(bw, "%s\n%s\n\n", labelClean, e.Cleaned)
		fmt.Fprintf(bw, "%s %s\n", labelBad, verdict)
		fmt.Fprintf(bw, "\n%s\n\n", rule)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

// Save writes the report to dir/name, creating dir when needed, and returns the file path
func Save(dir, name string, c Cleaner, texts []string) (string, Summary, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if name == "" {
		name = DefaultName
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Summary{}, fmt.Errorf("report: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", Summary{}, fmt.Errorf("report: create %s: %w", path, err)
	}
	sum, werr := Write(f, c, texts)
	cerr := f.Close()
	if werr != nil {
		return path, sum, werr
	}
	if cerr != nil {
		return path, sum, fmt.Errorf("report: close %s: %w", path, cerr)
	}
	return path, sum, nil
}
