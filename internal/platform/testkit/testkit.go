// Package testkit holds assertions and seam helpers shared by package tests
package testkit

import (
	"strings"
	"testing"

	perr "muzzle/internal/platform/errors"
)

// MustPanic fails t unless fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails t unless haystack contains needle. Long output is cut to its tail
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	const keep = 2048
	shown := haystack
	if len(shown) > keep {
		shown = "..." + shown[len(shown)-keep:]
	}
	t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, shown)
}

// MustCode fails t unless err carries code
func MustCode(t *testing.T, err error, code perr.ErrorCode) {
	t.Helper()
	if got := perr.CodeOf(err); err == nil || got != code {
		t.Fatalf("error code = %v (%v), want %v", got, err, code)
	}
}
