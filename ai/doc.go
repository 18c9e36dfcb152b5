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


// Package ai provides abstractions for the AI collaborators used by Querent.
//
// This package defines interfaces for the two language-model-backed
// operations in the retrieval pipeline: text embedding and natural-language
// query understanding. The pipeline depends on these abstractions rather
// than concrete service clients.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - IntentParser: Parses a free-text query into a cleaned search string
//     plus structured filters
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/cached: A caching Embedder decorator backed by the storage layer
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockIntentParser) return concrete types to
// enable behavior injection and call-count assertions.
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithParserHost("https://api.mistral.ai/v1"),
//	    ai.WithParserModel("mistral-small-latest"),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "high income stable employment")
//	intent, err := provider.IntentParser().ParseQuery(ctx, "young married clients who defaulted")
package ai
