package dialect

import (
	"sort"
	"strings"
	"sync"
)

// Registry of built dialects. Written at init() time by dialect
// packages, read-only afterwards.
var (
	dialectsMu  sync.RWMutex
	dialects    = make(map[string]*Dialect)
	defaultName = "ansi"
)

// Register adds a dialect to the registry under its lowercased name.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// Get returns a dialect by name, case-insensitively.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Resolve returns the dialect for name, falling back to the generic
// default when the name is unrecognized. The second result reports
// whether the fallback was taken, so callers can surface a notice
// instead of this package writing one.
func Resolve(name string) (*Dialect, bool) {
	if d, ok := Get(name); ok {
		return d, false
	}
	d, _ := Get(defaultName)
	return d, true
}

// List returns all registered dialect names, sorted.
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
