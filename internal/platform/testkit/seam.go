package testkit

import (
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap sets *target to replacement until t finishes
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until t finishes.
// Tests that Swap package level seams call it first
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
