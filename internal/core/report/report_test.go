package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"muzzle/internal/core/filter"
	"muzzle/internal/platform/testkit"
)

func mustFilter(t *testing.T) *filter.Filter {
	t.Helper()
	f, err := filter.Default()
	if err != nil {
		t.Fatalf("filter.Default: %v", err)
	}
	return f
}

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Write(&buf, mustFilter(t), []string{"  이런 씨발  ", "", "안녕하세요"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	rule := strings.Repeat("=", 50)
	want := "=== 욕설 필터링 결과 로그 (통문장 처리) ===\n\n" +
		"[Example 1]\n원문:\n이런 씨발\n\n정제 결과:\n이런 ***\n\n욕 포함?: True\n\n" + rule + "\n\n" +
		"[Example 3]\n원문:\n안녕하세요\n\n정제 결과:\n안녕하세요\n\n욕 포함?: 정상\n\n" + rule + "\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("report =\n%q\nwant\n%q", got, want)
	}
	if sum != (Summary{Total: 3, Written: 2, Skipped: 1, Profane: 1}) {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestWrite_EmptyInputHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Write(&buf, mustFilter(t), nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != header+"\n\n" {
		t.Fatalf("got %q", buf.String())
	}
	if sum != (Summary{}) {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestWrite_MultilineKeepsOriginalLines(t *testing.T) {
	in := "\nㅈㄴ 잘하는데\n이런 병신같은\n"
	var buf bytes.Buffer
	if _, err := Write(&buf, mustFilter(t), []string{in}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	testkit.MustContain(t, out, "원문:\nㅈㄴ 잘하는데\n이런 병신같은\n\n")
	testkit.MustContain(t, out, "정제 결과:\n*** 잘하는데 이런 ***같은\n\n")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	_, err := Write(failWriter{}, mustFilter(t), []string{"x"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("want writer error, got %v", err)
	}
}

func TestSave_CreatesDirAndDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, sum, err := Save(dir, "", mustFilter(t), []string{"씨발"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != DefaultName {
		t.Fatalf("path = %q", path)
	}
	if sum.Profane != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	testkit.MustContain(t, string(b), "[Example 1]\n원문:\n씨발\n\n정제 결과:\n***\n")
}

func TestBuild_Entries(t *testing.T) {
	entries, sum := Build(mustFilter(t), []string{" ", "병신", "hello"})
	want := []Entry{
		{Index: 2, Text: "병신", Cleaned: "***", Profane: true},
		{Index: 3, Text: "hello", Cleaned: "hello", Profane: false},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %+v", entries)
	}
	if sum.Skipped != 1 || sum.Written != 2 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestBuild_SeparatorsAreBlank(t *testing.T) {
	entries, sum := Build(mustFilter(t), []string{"\x1c\x1f", "\x1e병신\x1d"})
	if sum.Skipped != 1 || len(entries) != 1 || entries[0].Text != "병신" || entries[0].Index != 2 {
		t.Fatalf("entries = %+v summary = %+v", entries, sum)
	}
	if got := Split("a\n\x1c\nb", SplitParagraphs); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Split = %q", got)
	}
}

func TestSplit(t *testing.T) {
	text := "a\r\nb\n\n\nc\n  \nd"
	cases := []struct {
		mode SplitMode
		want []string
	}{
		{SplitWhole, []string{"a\nb\n\n\nc\n  \nd"}},
		{SplitLines, []string{"a", "b", "", "", "c", "  ", "d"}},
		{SplitParagraphs, []string{"a\nb", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			if got := Split(text, tc.mode); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Split(%s) = %q, want %q", tc.mode, got, tc.want)
			}
		})
	}
}

func TestParseSplitMode(t *testing.T) {
	cases := map[string]SplitMode{"": SplitWhole, "whole": SplitWhole, " Lines ": SplitLines, "paragraphs": SplitParagraphs}
	for in, want := range cases {
		got, err := ParseSplitMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseSplitMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSplitMode("words"); err == nil {
		t.Fatalf("want error for unknown mode")
	}
}
