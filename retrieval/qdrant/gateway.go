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


// Package qdrant implements retrieval.Gateway as a minimal REST client
// to a Qdrant collection.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/querent/ai"
	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/retrieval"
)

const defaultTimeout = 30 * time.Second

// Config holds the connection settings for a Qdrant collection.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Gateway is a Qdrant-backed retrieval.Gateway. Query text is embedded
// through the configured embedder before every search.
type Gateway struct {
	url        string
	apiKey     string
	collection string
	embedder   ai.Embedder
	client     *http.Client
	logger     *slog.Logger
}

var _ retrieval.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway for the collection described by cfg.
func NewGateway(cfg Config, embedder ai.Embedder) (*Gateway, error) {
	if embedder == nil {
		return nil, errors.New("embedder must not be nil")
	}
	if cfg.URL == "" {
		return nil, errors.New("qdrant URL must not be empty")
	}
	if cfg.Collection == "" {
		return nil, errors.New("collection name must not be empty")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Gateway{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		embedder:   embedder,
		client:     &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "qdrant"),
	}, nil
}

type scoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// Search embeds the query text and runs a filtered similarity search.
// Hits are returned in the database's ranking order.
func (g *Gateway) Search(ctx context.Context, req core.RetrievalRequest) ([]core.RetrievalHit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vector, err := g.embedder.EmbedText(ctx, req.QueryVectorText)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        req.TopK,
		"with_payload": true,
	}
	if conditions := buildConditions(req.Filters); len(conditions) > 0 {
		body["filter"] = map[string]any{"must": conditions}
	}

	var resp struct {
		Result []scoredPoint `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", g.collection)
	if err := g.postJSON(ctx, path, body, &resp); err != nil {
		return nil, err
	}

	hits := make([]core.RetrievalHit, 0, len(resp.Result))
	for _, point := range resp.Result {
		hits = append(hits, core.RetrievalHit{
			EntityID:   formatPointID(point.ID),
			Score:      point.Score,
			Attributes: point.Payload,
		})
	}

	g.logger.Debug("search executed",
		"top_k", req.TopK,
		"filters", len(req.Filters),
		"hits", len(hits))
	return hits, nil
}

// Get fetches a single point by ID.
func (g *Gateway) Get(ctx context.Context, entityID string) (*core.RetrievalHit, error) {
	body := map[string]any{
		"ids":          []any{pointID(entityID)},
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points", g.collection)
	if err := g.postJSON(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Result) == 0 {
		return nil, retrieval.ErrNotFound
	}

	return &core.RetrievalHit{
		EntityID:   formatPointID(resp.Result[0].ID),
		Attributes: resp.Result[0].Payload,
	}, nil
}

// List scrolls through the collection in point-ID order.
func (g *Gateway) List(ctx context.Context, limit int, offset string) ([]core.RetrievalHit, string, error) {
	if limit <= 0 {
		return nil, "", core.ErrInvalidTopK
	}

	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
	}
	if offset != "" {
		body["offset"] = pointID(offset)
	}

	var resp struct {
		Result struct {
			Points []struct {
				ID      any            `json:"id"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
			NextPageOffset any `json:"next_page_offset"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/scroll", g.collection)
	if err := g.postJSON(ctx, path, body, &resp); err != nil {
		return nil, "", err
	}

	hits := make([]core.RetrievalHit, 0, len(resp.Result.Points))
	for _, point := range resp.Result.Points {
		hits = append(hits, core.RetrievalHit{
			EntityID:   formatPointID(point.ID),
			Attributes: point.Payload,
		})
	}

	var next string
	if resp.Result.NextPageOffset != nil {
		next = formatPointID(resp.Result.NextPageOffset)
	}
	return hits, next, nil
}

// Stats reports collection status and size.
func (g *Gateway) Stats(ctx context.Context) (*retrieval.Stats, error) {
	var resp struct {
		Result struct {
			Status      string `json:"status"`
			PointsCount uint64 `json:"points_count"`
			Config      struct {
				Params struct {
					Vectors struct {
						Size     int    `json:"size"`
						Distance string `json:"distance"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s", g.collection)
	if err := g.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	return &retrieval.Stats{
		Status:      resp.Result.Status,
		PointsCount: resp.Result.PointsCount,
		VectorSize:  resp.Result.Config.Params.Vectors.Size,
		Distance:    resp.Result.Config.Params.Vectors.Distance,
	}, nil
}

// buildConditions translates normalized filters into Qdrant must-conditions.
// Keys are sorted so request bodies are deterministic.
func buildConditions(filters core.Filters) []map[string]any {
	normalized := filters.Normalize()

	keys := make([]string, 0, len(normalized))
	for key := range normalized {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	conditions := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		spec := normalized[key]
		field := core.FieldForKey(key)

		if spec.IsRange() {
			bounds := map[string]any{}
			if spec.Range.GTE != nil {
				bounds["gte"] = *spec.Range.GTE
			}
			if spec.Range.LTE != nil {
				bounds["lte"] = *spec.Range.LTE
			}
			conditions = append(conditions, map[string]any{
				"key":   field,
				"range": bounds,
			})
			continue
		}

		conditions = append(conditions, map[string]any{
			"key":   field,
			"match": map[string]any{"value": spec.Value},
		})
	}
	return conditions
}

// pointID converts a string ID back to the type Qdrant stores it as.
// Numeric IDs must be sent as numbers or lookups silently miss.
func pointID(id string) any {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return n
	}
	return id
}

func formatPointID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (g *Gateway) postJSON(ctx context.Context, path string, body, out any) error {
	return g.doJSON(ctx, http.MethodPost, path, body, out)
}

func (g *Gateway) getJSON(ctx context.Context, path string, out any) error {
	return g.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.url+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.apiKey != "" {
		req.Header.Set("api-key", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Join(retrieval.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			retrieval.ErrUnavailable, method, path, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding qdrant response: %w", err)
		}
	}
	return nil
}
