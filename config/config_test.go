package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:11434", cfg.AI.EmbeddingHost)
		assert.Equal(t, "all-minilm", cfg.AI.EmbeddingModel)
		assert.Equal(t, "http://localhost:6333", cfg.Qdrant.URL)
		assert.Equal(t, "client_profiles", cfg.Qdrant.Collection)
		assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
		assert.Equal(t, 60.0, cfg.OCR.ConfidenceThreshold)
		assert.Equal(t, 5, cfg.TopK)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "querent.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
ai:
  embedding_host: http://models.internal:8080
  embedding_model: nomic-embed-text
qdrant:
  collection: applicants
  timeout_secs: 5
ocr:
  languages: [eng, rus]
top_k: 10
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://models.internal:8080", cfg.AI.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text", cfg.AI.EmbeddingModel)
		// Parser host falls back to the embedding host.
		assert.Equal(t, "http://models.internal:8080", cfg.AI.ParserHost)
		assert.Equal(t, "applicants", cfg.Qdrant.Collection)
		assert.Equal(t, 5, cfg.Qdrant.TimeoutSecs)
		assert.Equal(t, []string{"eng", "rus"}, cfg.OCR.Languages)
		assert.Equal(t, 10, cfg.TopK)
		// Unset sections still get defaults.
		assert.Equal(t, "mistral-small-latest", cfg.AI.ParserModel)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "querent.yaml")

	original, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	original.Qdrant.Collection = "saved_collection"

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved_collection", loaded.Qdrant.Collection)
	assert.Equal(t, original.AI, loaded.AI)
}

func TestEnvResolution(t *testing.T) {
	t.Setenv("QUERENT_TEST_TOKEN", "tok-123")
	t.Setenv("QUERENT_TEST_QDRANT_KEY", "qk-456")

	ai := AIConfig{TokenEnv: "QUERENT_TEST_TOKEN"}
	assert.Equal(t, "tok-123", ai.Token())

	qdrant := QdrantConfig{APIKeyEnv: "QUERENT_TEST_QDRANT_KEY"}
	assert.Equal(t, "qk-456", qdrant.APIKey())

	assert.Empty(t, (&AIConfig{}).Token())
}
