package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"muzzle/internal/platform/testkit"
)

func TestRun_StdinLinesToStdout(t *testing.T) {
	var out, errb bytes.Buffer
	in := strings.NewReader("안녕하세요\n\n이런 씨.발\n")
	if err := run([]string{"-stdout", "-split", "lines", "-mask", "##"}, in, &out, &errb); err != nil {
		t.Fatalf("run: %v (%s)", err, errb.String())
	}
	got := out.String()
	testkit.MustContain(t, got, "[Example 1]\n원문:\n안녕하세요")
	testkit.MustContain(t, got, "[Example 3]\n원문:\n이런 씨.발\n\n정제 결과:\n이런 ##")
	if strings.Contains(got, "[Example 2]") {
		t.Fatalf("blank line should be skipped:\n%s", got)
	}
}

func TestRun_FilesToDir(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("첫 문단\n둘째 줄\n\nㅅㅂ 진짜"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("괜찮은 문장"), 0o644); err != nil {
		t.Fatal(err)
	}
	wl := filepath.Join(dir, "list.toml")
	if err := os.WriteFile(wl, []byte("version = 1\nname = \"t\"\nwords = [\"괜찮\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	var out bytes.Buffer
	args := []string{"-split", "paragraphs", "-out", outDir, "-name", "r.txt", "-wordlist", wl, a, b}
	if err := run(args, strings.NewReader(""), &out, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(outDir, "r.txt")
	testkit.MustContain(t, out.String(), path)

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testkit.MustContain(t, string(body), "[Example 3]\n원문:\n괜찮은 문장\n\n정제 결과:\n***은 문장")
	testkit.MustContain(t, string(body), "[Example 2]\n원문:\nㅅㅂ 진짜\n\n정제 결과:\nㅅㅂ 진짜")
}

func TestRun_Errors(t *testing.T) {
	var sink bytes.Buffer
	cases := map[string][]string{
		"bad split":        {"-stdout", "-split", "words"},
		"missing input":    {"-stdout", filepath.Join(t.TempDir(), "nope.txt")},
		"missing wordlist": {"-stdout", "-wordlist", filepath.Join(t.TempDir(), "nope.json")},
		"unknown flag":     {"-bogus"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if err := run(args, strings.NewReader("x"), &sink, &sink); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}
