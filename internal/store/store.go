// Package store persists the topology graph. The core only needs two
// operations from this boundary: load an existing graph (or an empty one
// when nothing was saved yet) and save a graph without ever corrupting
// the previous good copy.
package store

import (
	"context"

	"netgrapher/internal/domain"
)

// Store defines the persistence boundary. The artifact identifier (file
// path, database path) is bound when the store is constructed.
type Store interface {
	// Load returns the persisted graph, or an empty graph when nothing
	// has been saved yet
	Load(ctx context.Context) (*domain.Graph, error)

	// Save persists the graph. Any pre-existing artifact survives a crash
	// mid-write.
	Save(ctx context.Context, g *domain.Graph) error

	// Close releases resources
	Close() error
}
