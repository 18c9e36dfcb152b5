package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/querent/ai/mock"
	"github.com/poiesic/querent/storage"
	"github.com/poiesic/querent/storage/badger"
)

func newTestEmbedder(t *testing.T, inner *mock.MockEmbedder, model string) (*Embedder, storage.EmbeddingCache) {
	t.Helper()
	cache, backend, err := badger.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close()
		backend.Close()
	})

	embedder, err := NewEmbedder(inner, cache, model)
	require.NoError(t, err)
	return embedder, cache
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("miss populates cache", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		embedder, cache := newTestEmbedder(t, inner, "all-minilm")

		first, err := embedder.EmbedText(ctx, "applicants with low income")
		require.NoError(t, err)
		assert.Equal(t, 1, inner.CallCount())

		entry, err := cache.GetEmbedding(ctx, cacheKey("all-minilm", "applicants with low income"))
		require.NoError(t, err)
		assert.Equal(t, first, entry.Vector)
	})

	t.Run("hit skips inner embedder", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		embedder, _ := newTestEmbedder(t, inner, "all-minilm")

		first, err := embedder.EmbedText(ctx, "pensioners who own realty")
		require.NoError(t, err)
		second, err := embedder.EmbedText(ctx, "pensioners who own realty")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.CallCount())
	})

	t.Run("different model embeds separately", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		cache, backend, err := badger.NewMemoryCache()
		require.NoError(t, err)
		t.Cleanup(func() { backend.Close() })

		a, err := NewEmbedder(inner, cache, "all-minilm")
		require.NoError(t, err)
		b, err := NewEmbedder(inner, cache, "nomic-embed-text")
		require.NoError(t, err)

		_, err = a.EmbedText(ctx, "same text")
		require.NoError(t, err)
		_, err = b.EmbedText(ctx, "same text")
		require.NoError(t, err)

		assert.Equal(t, 2, inner.CallCount())
	})

	t.Run("inner error propagates", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		inner.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		embedder, _ := newTestEmbedder(t, inner, "all-minilm")

		_, err := embedder.EmbedText(ctx, "anything")
		assert.Error(t, err)
	})

	t.Run("cache write failure still returns vector", func(t *testing.T) {
		inner := mock.NewMockEmbedder()
		cache, backend, err := badger.NewMemoryCache()
		require.NoError(t, err)

		embedder, err := NewEmbedder(inner, cache, "all-minilm")
		require.NoError(t, err)

		// Closing the backend turns every cache operation into an error.
		require.NoError(t, backend.Close())

		vector, err := embedder.EmbedText(ctx, "resilient to cache loss")
		require.NoError(t, err)
		assert.NotEmpty(t, vector)
	})

	t.Run("constructor validation", func(t *testing.T) {
		cache, backend, err := badger.NewMemoryCache()
		require.NoError(t, err)
		t.Cleanup(func() { backend.Close() })

		_, err = NewEmbedder(nil, cache, "m")
		assert.Error(t, err)
		_, err = NewEmbedder(mock.NewMockEmbedder(), nil, "m")
		assert.Error(t, err)
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("m", "text"), cacheKey("m", "text"))
	assert.NotEqual(t, cacheKey("m", "text"), cacheKey("m2", "text"))
	// Separator keeps boundary shifts from colliding.
	assert.NotEqual(t, cacheKey("ab", "c"), cacheKey("a", "bc"))
}
