// internal/engine/registry.go
package engine

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.Mutex
	registry   = map[string]Rules{}
)

// Register makes a game type available by name. It is intended to be called
// from package init or during startup; registering the same name twice
// panics, as that is a wiring bug.
func Register(r Rules) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[r.Name()]; dup {
		panic(fmt.Sprintf("engine: duplicate rules registration for %q", r.Name()))
	}
	registry[r.Name()] = r
}

// Lookup returns the Rules registered under name.
func Lookup(name string) (Rules, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	r, ok := registry[name]
	return r, ok
}

// Names lists the registered game types, sorted, for startup logging.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
