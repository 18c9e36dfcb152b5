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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/querent/ai"
	"github.com/poiesic/querent/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentParser implements ai.IntentParser using OpenAI-compatible chat APIs.
type IntentParser struct {
	client llms.Model
	logger *slog.Logger
}

// llmReply is the strict schema for the model's JSON response. Every field
// is optional; defaults are applied during conversion. Field presence is
// never trusted.
type llmReply struct {
	Intent             *string                    `json:"intent"`
	Filters            map[string]json.RawMessage `json:"filters"`
	DetectedAttributes []string                   `json:"detected_attributes"`
	SearchQuery        string                     `json:"search_query"`
	Explanation        string                     `json:"explanation"`
}

// rangeBody matches the {gte, lte} object expected under a range-suffixed key.
type rangeBody struct {
	GTE *float64 `json:"gte"`
	LTE *float64 `json:"lte"`
}

// newIntentParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentParser(config *ai.Config) (*IntentParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ParserHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ParserModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentParser{
		client: client,
		logger: slog.Default().With("component", "openai-intent-parser"),
	}, nil
}

// NewIntentParser creates a new query-understanding parser using the provided
// configuration.
//
// Returns ai.IntentParser interface to enforce abstraction.
func NewIntentParser(config *ai.Config) (ai.IntentParser, error) {
	return newIntentParser(config)
}

// ParseQuery sends the raw query to the language model and converts its JSON
// reply into a normalized intent. It returns an error when the service is
// unreachable or the reply cannot be decoded; callers fall back to a raw-text
// search in that case.
func (p *IntentParser) ParseQuery(ctx context.Context, query string) (core.ResolvedIntent, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(intentSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPromptPrefix + query),
			},
		},
	}

	// Low temperature for consistent parsing
	response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
	if err != nil {
		p.logger.Error("failed to generate content", "err", err)
		return core.ResolvedIntent{}, err
	}

	if len(response.Choices) < 1 {
		p.logger.Warn("no choices returned from model")
		return core.ResolvedIntent{}, fmt.Errorf("intent parser: empty response")
	}

	intent, err := decodeIntent(response.Choices[0].Content, query)
	if err != nil {
		p.logger.Warn("error parsing model response", "response", response.Choices[0].Content, "err", err)
		return core.ResolvedIntent{}, err
	}

	p.logger.Debug("parsed query intent",
		"filters", len(intent.Filters),
		"attributes", len(intent.DetectedAttributes))

	return intent, nil
}

// decodeIntent turns the model's raw reply text into a ResolvedIntent.
// The reply is expected to contain one JSON object, optionally wrapped in a
// markdown code fence. Missing or empty fields default: search_query to the
// original query, filters to empty, detected_attributes to empty.
func decodeIntent(raw, originalQuery string) (core.ResolvedIntent, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = repairJSON(text)

	var reply llmReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return core.ResolvedIntent{}, fmt.Errorf("intent parser: decode reply: %w", err)
	}

	intent := core.ResolvedIntent{
		SearchText:         reply.SearchQuery,
		Filters:            make(core.Filters, len(reply.Filters)),
		DetectedAttributes: reply.DetectedAttributes,
		Explanation:        reply.Explanation,
	}
	if intent.SearchText == "" {
		intent.SearchText = originalQuery
	}
	if intent.DetectedAttributes == nil {
		intent.DetectedAttributes = []string{}
	}
	if reply.Intent != nil {
		intent.Intent = *reply.Intent
	}

	for key, value := range reply.Filters {
		spec, err := decodeFilter(key, value)
		if err != nil {
			// A single malformed filter is dropped, not fatal: the rest of
			// the reply is still usable.
			continue
		}
		intent.Filters[key] = spec
	}

	return intent, nil
}

// decodeFilter converts one raw filter value. Keys carrying the range suffix
// decode to {gte, lte} bounds; everything else is an exact-match value.
// Unrecognized keys pass through: schema validation is the retrieval
// gateway's responsibility.
func decodeFilter(key string, value json.RawMessage) (core.FilterSpec, error) {
	if core.IsRangeKey(key) {
		var body rangeBody
		if err := json.Unmarshal(value, &body); err != nil {
			return core.FilterSpec{}, err
		}
		return core.Between(body.GTE, body.LTE), nil
	}

	var exact any
	if err := json.Unmarshal(value, &exact); err != nil {
		return core.FilterSpec{}, err
	}
	return core.Exact(exact), nil
}
