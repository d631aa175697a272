package relata

import (
	"fmt"
	"sort"
	"sync"
)

// The global name registry. Relation types are registered once at
// construction, typically during package initialization, and never removed.
// The lock covers concurrent init-time registration from multiple
// goroutines; per-host mutation stays single-threaded by contract.
var registry = struct {
	mu     sync.RWMutex
	byName map[string]Type
}{byName: make(map[string]Type)}

func registerType(t Type) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.byName[t.Name()]; exists {
		return fmt.Errorf("relation type %q already registered", t.Name())
	}
	registry.byName[t.Name()] = t
	return nil
}

// TypeByName looks up a registered relation type by its unique name.
func TypeByName(name string) (Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	t, ok := registry.byName[name]
	return t, ok
}

// RegisteredTypes returns a snapshot of all registered relation types,
// sorted by name for stable diagnostics output.
func RegisteredTypes() []Type {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]Type, 0, len(registry.byName))
	for _, t := range registry.byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
