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


// Package intent turns natural-language queries into structured search
// intents, degrading to a plain-text search when the language model is
// unavailable or returns garbage. Resolution never fails the query.
package intent

import (
	"context"
	"log/slog"

	"github.com/poiesic/querent/ai"
	"github.com/poiesic/querent/core"
)

// Resolver resolves query intents through an ai.IntentParser.
type Resolver struct {
	parser ai.IntentParser
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver. A nil parser is allowed and makes every
// resolution fall back to a raw-text search, which keeps the pipeline
// usable when no language model is configured.
func NewResolver(parser ai.IntentParser, opts ...Option) *Resolver {
	r := &Resolver{
		parser: parser,
		logger: slog.Default().With("component", "intent"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses the query into a structured intent. On any parser failure
// the raw query is returned as the search text with no filters; the error
// is logged, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, query string) core.ResolvedIntent {
	if r.parser == nil {
		return core.FallbackIntent(query)
	}

	resolved, err := r.parser.ParseQuery(ctx, query)
	if err != nil {
		r.logger.Warn("intent resolution failed, searching raw query",
			"query", query,
			"error", err)
		return core.FallbackIntent(query)
	}

	if resolved.SearchText == "" {
		resolved.SearchText = query
	}
	if resolved.Filters == nil {
		resolved.Filters = core.Filters{}
	}
	if resolved.DetectedAttributes == nil {
		resolved.DetectedAttributes = []string{}
	}
	return resolved
}
