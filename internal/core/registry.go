package core

import (
	"fmt"
	"sort"
	"sync"
)

// FieldSpec describes one CSV column read for a table.
type FieldSpec struct {
	Name     string // Column header name (must match CSV exactly)
	Required bool   // Rows with an empty value are skipped
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key   string // Table name in the store: "talking_points"
	Label string // Display name: "Talking Points"
	Order int    // Dependency order; parents before children
}

// TableDefinition describes a seeded table and the CSV columns feeding it.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
}

// Columns returns the CSV column names in declaration order.
func (t TableDefinition) Columns() []string {
	cols := make([]string, len(t.FieldSpecs))
	for i, spec := range t.FieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

var (
	registry   = make(map[string]TableDefinition)
	registryMu sync.RWMutex
)

// Register adds a table definition to the registry.
// Panics if a table with the same key is already registered.
func Register(def TableDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a table definition by key.
// Returns false if not found.
func Get(key string) (TableDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// MustGet is Get for keys registered by this package.
func MustGet(key string) TableDefinition {
	def, ok := Get(key)
	if !ok {
		panic(fmt.Sprintf("unknown table: %s", key))
	}
	return def
}

// All returns all registered table definitions in dependency order.
func All() []TableDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
