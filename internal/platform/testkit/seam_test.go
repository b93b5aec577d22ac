package testkit

import (
	"slices"
	"sync"
	"testing"
	"time"
)

var (
	maskFn  = func(s string) string { return "***" }
	maxRuns = 10
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("func", func(t *testing.T) {
		Swap(t, &maskFn, func(string) string { return "##" })
		if got := maskFn("x"); got != "##" {
			t.Fatalf("swap not applied: %q", got)
		}
	})
	t.Run("int", func(t *testing.T) {
		Swap(t, &maxRuns, 42)
		if maxRuns != 42 {
			t.Fatalf("swap not applied: %d", maxRuns)
		}
	})
	if maskFn("x") != "***" || maxRuns != 10 {
		t.Fatalf("originals not restored: %q %d", maskFn("x"), maxRuns)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var (
		mu  sync.Mutex
		seq []string
	)
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"A", "B"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(30 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	ab := []string{"A-start", "A-end", "B-start", "B-end"}
	ba := []string{"B-start", "B-end", "A-start", "A-end"}
	if !slices.Equal(seq, ab) && !slices.Equal(seq, ba) {
		t.Fatalf("interleaved: %v", seq)
	}
}
