package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/storage"
)

func TestEmbeddingCache(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) storage.EmbeddingCache {
		t.Helper()
		cache, backend, err := NewMemoryCache()
		require.NoError(t, err)
		t.Cleanup(func() {
			cache.Close()
			backend.Close()
		})
		return cache
	}

	t.Run("put then get", func(t *testing.T) {
		cache := setup(t)

		key := core.IDFromContent("young female applicants")
		want := &core.CachedEmbedding{
			Model:  "all-minilm",
			Vector: []float32{0.1, 0.2, 0.3},
		}
		require.NoError(t, cache.PutEmbedding(ctx, key, want))

		got, err := cache.GetEmbedding(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want.Model, got.Model)
		assert.Equal(t, want.Vector, got.Vector)
	})

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		cache := setup(t)

		_, err := cache.GetEmbedding(ctx, core.ID(42))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put overwrites existing entry", func(t *testing.T) {
		cache := setup(t)

		key := core.IDFromContent("applicants who defaulted")
		require.NoError(t, cache.PutEmbedding(ctx, key, &core.CachedEmbedding{
			Model:  "all-minilm",
			Vector: []float32{1},
		}))
		require.NoError(t, cache.PutEmbedding(ctx, key, &core.CachedEmbedding{
			Model:  "nomic-embed-text",
			Vector: []float32{2, 3},
		}))

		got, err := cache.GetEmbedding(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "nomic-embed-text", got.Model)
		assert.Equal(t, []float32{2, 3}, got.Vector)
	})

	t.Run("nil embedding rejected", func(t *testing.T) {
		cache := setup(t)
		assert.Error(t, cache.PutEmbedding(ctx, core.ID(1), nil))
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		backend, err := OpenBackend("", true)
		require.NoError(t, err)
		t.Cleanup(func() { backend.Close() })

		cache, err := NewEmbeddingCache(backend, WithTTL(time.Millisecond))
		require.NoError(t, err)

		key := core.IDFromContent("short lived")
		require.NoError(t, cache.PutEmbedding(ctx, key, &core.CachedEmbedding{
			Model:  "all-minilm",
			Vector: []float32{1},
		}))

		time.Sleep(20 * time.Millisecond)

		_, err = cache.GetEmbedding(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("closed backend", func(t *testing.T) {
		cache, backend, err := NewMemoryCache()
		require.NoError(t, err)
		require.NoError(t, backend.Close())

		_, err = cache.GetEmbedding(ctx, core.ID(1))
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	})
}
