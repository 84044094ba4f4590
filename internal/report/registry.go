package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry maps format names to Formatter implementations. The inspect
// command resolves its --format flag against it.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Register adds a formatter under the given format name. Registering the
// same name twice keeps the later formatter.
func (r *Registry) Register(name string, f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formatters[name] = f
}

// Formatter returns the formatter registered under name.
func (r *Registry) Formatter(name string) (Formatter, error) {
	r.mu.RLock()
	f, ok := r.formatters[name]
	r.mu.RUnlock()

	// The read lock must be released first: AvailableFormats locks again.
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (available: %s)", name, r.AvailableFormats())
	}

	return f, nil
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.formatters))
}

// AvailableFormats renders the registered names as a comma-separated
// list for error messages and flag help.
func (r *Registry) AvailableFormats() string {
	formats := r.Formats()
	if len(formats) == 0 {
		return "none"
	}

	return strings.Join(formats, ", ")
}

// DefaultRegistry returns a registry with the built-in formats: table,
// json, yaml.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("table", &TableFormatter{})
	r.Register("json", &JSONFormatter{})
	r.Register("yaml", &YAMLFormatter{})

	return r
}
