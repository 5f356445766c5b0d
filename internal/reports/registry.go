// Package reports defines the canned FlexiMart analytics reports and
// runs them against the operational store or the warehouse.
package reports

import (
	"fmt"
	"sort"
	"sync"
)

// Source names the database a report runs against.
type Source string

const (
	// SourceStore reports query the normalized operational store.
	SourceStore Source = "store"

	// SourceWarehouse reports query the star-schema warehouse.
	SourceWarehouse Source = "warehouse"
)

// Param is a typed report parameter with a default.
type Param struct {
	Name        string
	Kind        string // int, float or string
	Default     any
	Description string
}

// Definition is a registered report: a parameterized query plus the
// columns it yields.
type Definition struct {
	Name        string
	Description string
	Source      Source
	Params      []Param
	Columns     []string
	SQL         string
}

var (
	registry = make(map[string]Definition)
	mu       sync.RWMutex
)

// Register adds a report definition to the registry.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()
	registry[def.Name] = def
}

// Get retrieves a report definition by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown report: %s", name)
	}
	return def, nil
}

// List returns all registered report names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered report definitions, sorted by name.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
