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


// Package badger implements the storage interfaces on BadgerDB.
package badger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/storage"
)

// EmbeddingCache is a BadgerDB-backed implementation of storage.EmbeddingCache.
type EmbeddingCache struct {
	backend *Backend
	ttl     time.Duration
	logger  *slog.Logger
}

var _ storage.EmbeddingCache = (*EmbeddingCache)(nil)

// CacheOption configures an EmbeddingCache.
type CacheOption func(*EmbeddingCache)

// WithTTL makes stored entries expire after the given duration.
// Zero keeps entries forever, which is the default.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *EmbeddingCache) {
		c.ttl = ttl
	}
}

// NewEmbeddingCache creates an embedding cache on top of an open backend.
// The cache does not own the backend; Close is a no-op and the caller
// closes the backend itself.
func NewEmbeddingCache(backend *Backend, opts ...CacheOption) (*EmbeddingCache, error) {
	if backend == nil {
		return nil, errors.New("backend must not be nil")
	}
	c := &EmbeddingCache{
		backend: backend,
		logger:  slog.Default().With("component", "embedding_cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetEmbedding retrieves a cached embedding by key.
func (c *EmbeddingCache) GetEmbedding(ctx context.Context, key core.ID) (*core.CachedEmbedding, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var embedding *core.CachedEmbedding
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			embedding, err = storage.UnmarshalCachedEmbedding(val)
			if err != nil {
				return errors.Join(storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return embedding, nil
}

// PutEmbedding stores an embedding under the given key.
func (c *EmbeddingCache) PutEmbedding(ctx context.Context, key core.ID, embedding *core.CachedEmbedding) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if embedding == nil {
		return errors.New("embedding must not be nil")
	}

	data := storage.MarshalCachedEmbedding(embedding)
	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeEmbeddingKey(key), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close implements storage.EmbeddingCache. The shared backend stays open.
func (c *EmbeddingCache) Close() error {
	return nil
}
