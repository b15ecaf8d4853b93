package migrate

import (
	"context"
	"sort"
)

// Migrator prepares a storage backend (collections, indexes).
type Migrator interface {
	Name() string
	Migrate(ctx context.Context) error
}

// Plugin represents a migration plugin with an execution order.
type Plugin struct {
	Order    int
	Migrator Migrator
}

var plugins []Plugin

// Register adds a migration plugin.
func Register(p Plugin) {
	plugins = append(plugins, p)
}

// All returns the registered migrators sorted by Order.
func All() []Migrator {
	sorted := make([]Plugin, len(plugins))
	copy(sorted, plugins)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	migrators := make([]Migrator, len(sorted))
	for i, p := range sorted {
		migrators[i] = p.Migrator
	}
	return migrators
}
