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


// Package retrieval defines the vector-database boundary of the pipeline.
//
// The retrieval/qdrant sub-package implements it against the Qdrant REST
// API; retrieval/mock provides a test double. Hits come back in the order
// the database ranked them and are never re-sorted here.
package retrieval

import (
	"context"

	"github.com/poiesic/querent/core"
)

// Stats describes the backing collection.
type Stats struct {
	Status      string
	PointsCount uint64
	VectorSize  int
	Distance    string
}

// Gateway is the single entry point to the vector database.
type Gateway interface {
	// Search embeds the request's query text and returns the ranked hits.
	// The request must pass core.RetrievalRequest.Validate.
	Search(ctx context.Context, req core.RetrievalRequest) ([]core.RetrievalHit, error)

	// Get fetches one entity by ID. Returns ErrNotFound when absent.
	// The hit carries no score; it was not ranked against anything.
	Get(ctx context.Context, entityID string) (*core.RetrievalHit, error)

	// List pages through stored entities. An empty offset starts from the
	// beginning; the returned offset continues the scan, empty when done.
	List(ctx context.Context, limit int, offset string) ([]core.RetrievalHit, string, error)

	// Stats reports collection status and size.
	Stats(ctx context.Context) (*Stats, error)
}
