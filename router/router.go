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


// Package router dispatches queries through the pipeline stage appropriate
// to their kind.
//
// Text queries go through intent resolution; document queries go through
// extraction and feature weighting instead, since a full client profile
// needs no language model to interpret it. Both paths end at the retrieval
// gateway, and every hit is annotated with how its query was processed.
package router

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/feature"
	"github.com/poiesic/querent/retrieval"
)

// DefaultTopK is the result count used when the caller does not set one.
const DefaultTopK = 5

// IntentResolver resolves text queries into structured intents.
// It is satisfied by *intent.Resolver.
type IntentResolver interface {
	Resolve(ctx context.Context, query string) core.ResolvedIntent
}

// DocumentExtractor extracts ordered page text from document queries.
// It is satisfied by *extract.Extractor.
type DocumentExtractor interface {
	Extract(ctx context.Context, query core.DocumentQuery) ([]core.ExtractedPage, error)
}

// Router routes queries to the text or document pipeline.
type Router struct {
	resolver  IntentResolver
	extractor DocumentExtractor
	weighter  *feature.Weighter
	gateway   retrieval.Gateway
	logger    *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithResolver sets the intent resolver for text queries.
// Without one, text queries search their raw words with no derived filters.
func WithResolver(resolver IntentResolver) Option {
	return func(r *Router) {
		r.resolver = resolver
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a router over the given pipeline stages.
func NewRouter(gateway retrieval.Gateway, extractor DocumentExtractor, opts ...Option) (*Router, error) {
	if gateway == nil {
		return nil, errors.New("gateway must not be nil")
	}
	if extractor == nil {
		return nil, errors.New("extractor must not be nil")
	}

	r := &Router{
		extractor: extractor,
		weighter:  feature.NewWeighter(),
		gateway:   gateway,
		logger:    slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RouteOptions carries the caller's search parameters.
type RouteOptions struct {
	// TopK is the number of results to return. Zero means DefaultTopK.
	TopK int
	// Filters are explicit predicates applied regardless of query kind.
	// For text queries, filters derived from the query overwrite these
	// on key collisions.
	Filters core.Filters
}

// Route processes a query end to end and returns annotated hits.
func (r *Router) Route(ctx context.Context, query core.Query, opts RouteOptions) ([]core.RetrievalHit, error) {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}

	switch q := query.(type) {
	case core.TextQuery:
		return r.routeText(ctx, q, opts)
	case core.DocumentQuery:
		return r.routeDocument(ctx, q, opts)
	default:
		return nil, core.ErrInvalidQueryKind
	}
}

func (r *Router) routeText(ctx context.Context, query core.TextQuery, opts RouteOptions) ([]core.RetrievalHit, error) {
	searchText := query.Raw
	filters := opts.Filters

	if r.resolver != nil {
		resolved := r.resolver.Resolve(ctx, query.Raw)
		searchText = resolved.SearchText
		filters = opts.Filters.Merge(resolved.Filters)

		if len(resolved.DetectedAttributes) > 0 {
			r.logger.Debug("query understood",
				"attributes", strings.Join(resolved.DetectedAttributes, "; "),
				"intent", resolved.Intent)
		}
	}

	hits, err := r.gateway.Search(ctx, core.RetrievalRequest{
		QueryVectorText: searchText,
		Filters:         filters,
		TopK:            opts.TopK,
	})
	if err != nil {
		return nil, err
	}

	return annotate(hits, core.QueryInfo{Kind: core.KindText}), nil
}

func (r *Router) routeDocument(ctx context.Context, query core.DocumentQuery, opts RouteOptions) ([]core.RetrievalHit, error) {
	pages, err := r.extractor.Extract(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		r.logger.Warn("no text extracted from document", "source", query.Name)
		return []core.RetrievalHit{}, nil
	}

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Text
	}
	combined := strings.Join(texts, " ")

	weighted := r.weighter.WeightedText(combined)
	r.logger.Debug("document condensed for search",
		"source", query.Name,
		"pages", len(pages),
		"raw_chars", len(combined),
		"weighted_chars", len(weighted))
	if summary := r.weighter.Summarize(combined); summary.String() != "" {
		r.logger.Info("document profile recognized",
			"source", query.Name,
			"summary", summary.String())
	}

	hits, err := r.gateway.Search(ctx, core.RetrievalRequest{
		QueryVectorText: weighted,
		Filters:         opts.Filters,
		TopK:            opts.TopK,
	})
	if err != nil {
		return nil, err
	}

	return annotate(hits, core.QueryInfo{
		Kind:           query.Kind,
		SourceFilename: query.Name,
		PagesExtracted: len(pages),
	}), nil
}

func annotate(hits []core.RetrievalHit, info core.QueryInfo) []core.RetrievalHit {
	for i := range hits {
		hits[i].Query = info
	}
	return hits
}
