package module

import (
	"slices"
	"sync"
)

// mounted records every module the API composes, by name
var (
	mu      sync.RWMutex
	mounted = map[string]struct{}{}
)

// Register records m as mounted. Registering a name twice is a no-op
func Register(m Module) {
	if m == nil {
		return
	}
	mu.Lock()
	mounted[m.Name()] = struct{}{}
	mu.Unlock()
}

// Names lists mounted modules, sorted
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(mounted))
	for k := range mounted {
		out = append(out, k)
	}
	mu.RUnlock()
	slices.Sort(out)
	return out
}
