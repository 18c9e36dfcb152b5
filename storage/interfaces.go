package storage

import (
	"context"

	"github.com/poiesic/querent/core"
)

// EmbeddingCache stores embedding vectors keyed by content-derived IDs.
// Implementations must be thread-safe and support concurrent access.
type EmbeddingCache interface {
	// GetEmbedding retrieves a cached embedding by key.
	// Returns ErrNotFound if no entry exists for the key.
	GetEmbedding(ctx context.Context, key core.ID) (*core.CachedEmbedding, error)

	// PutEmbedding stores an embedding under the given key.
	// An existing entry for the same key is overwritten.
	PutEmbedding(ctx context.Context, key core.ID, embedding *core.CachedEmbedding) error

	// Close closes the storage backend and releases resources.
	Close() error
}
