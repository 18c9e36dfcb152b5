package ai

import (
	"context"

	"github.com/poiesic/querent/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// IntentParser turns a natural-language query into a normalized intent:
// a cleaned search string plus the structured filters the language model
// recognized. Implementations must be thread-safe for concurrent use.
//
// ParseQuery returns an error when the collaborator is unreachable or its
// reply cannot be decoded; the caller is responsible for falling back to a
// raw-text search in that case.
type IntentParser interface {
	ParseQuery(ctx context.Context, query string) (core.ResolvedIntent, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and IntentParser
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentParser returns the query understanding service.
	// The returned IntentParser is safe for concurrent use.
	IntentParser() IntentParser

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
