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


// Package storage defines the persistence abstraction for the embedding cache.
//
// The pipeline itself is stateless per call; the only durable state in the
// process is an optional cache of query-text embeddings, keyed by content
// hash. The cache is a pure optimization: a miss or a cache error always
// falls through to the real embedding service.
//
// The storage/badger sub-package provides the BadgerDB-backed implementation.
package storage
