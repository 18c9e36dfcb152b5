package easyocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRecognize(t *testing.T) {
	ctx := context.Background()

	t.Run("sends image and returns text", func(t *testing.T) {
		image := []byte{0x89, 0x50, 0x4e, 0x47}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/recognize", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req recognizeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			decoded, err := base64.StdEncoding.DecodeString(req.Image)
			require.NoError(t, err)
			assert.Equal(t, image, decoded)

			json.NewEncoder(w).Encode(recognizeResponse{Text: "  recognized text \n"})
		}))
		defer server.Close()

		engine := NewEngine(server.URL)
		text, err := engine.Recognize(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "recognized text", text)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		engine := NewEngine(server.URL)
		_, err := engine.Recognize(ctx, []byte("img"))
		assert.ErrorContains(t, err, "503")
	})

	t.Run("invalid response body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		engine := NewEngine(server.URL)
		_, err := engine.Recognize(ctx, []byte("img"))
		assert.Error(t, err)
	})

	t.Run("context cancellation aborts request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		engine := NewEngine(server.URL)
		_, err := engine.Recognize(cancelled, []byte("img"))
		assert.Error(t, err)
	})
}
