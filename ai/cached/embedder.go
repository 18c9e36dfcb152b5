// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cached wraps an ai.Embedder with a persistent embedding cache.
//
// Query texts repeat heavily in interactive use, and embedding them is the
// slowest remote call in the pipeline after the LLM. The wrapper keys entries
// by a content hash of model name and text, so switching the embedding model
// naturally invalidates old entries. Cache failures are logged and ignored;
// the wrapped embedder is always the source of truth.
package cached

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/querent/ai"
	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/storage"
)

// Embedder is a caching decorator around another ai.Embedder.
type Embedder struct {
	inner  ai.Embedder
	cache  storage.EmbeddingCache
	model  string
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder wraps inner with a cache. The model name participates in the
// cache key; pass the same name the inner embedder is configured with.
func NewEmbedder(inner ai.Embedder, cache storage.EmbeddingCache, model string) (*Embedder, error) {
	if inner == nil {
		return nil, errors.New("inner embedder must not be nil")
	}
	if cache == nil {
		return nil, errors.New("cache must not be nil")
	}
	return &Embedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "cached_embedder"),
	}, nil
}

// EmbedText returns the cached vector for text if present, otherwise embeds
// through the wrapped embedder and stores the result.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(e.model, text)

	entry, err := e.cache.GetEmbedding(ctx, key)
	if err == nil && entry.Model == e.model {
		return entry.Vector, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		e.logger.Warn("embedding cache read failed", "error", err)
	}

	vector, err := e.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	putErr := e.cache.PutEmbedding(ctx, key, &core.CachedEmbedding{
		Model:  e.model,
		Vector: vector,
	})
	if putErr != nil {
		e.logger.Warn("embedding cache write failed", "error", putErr)
	}

	return vector, nil
}

// cacheKey derives the cache key from model name and text.
// The NUL separator keeps (model, text) pairs unambiguous.
func cacheKey(model, text string) core.ID {
	return core.IDFromContent(model + "\x00" + text)
}
