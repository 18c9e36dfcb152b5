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


// Package mock provides a test double for retrieval.Gateway.
package mock

import (
	"context"

	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/retrieval"
)

// MockGateway is a test double for retrieval.Gateway.
// It allows custom behavior injection via function fields.
type MockGateway struct {
	// SearchFunc is called by Search if set.
	// If nil, returns no hits.
	SearchFunc func(ctx context.Context, req core.RetrievalRequest) ([]core.RetrievalHit, error)

	// GetFunc is called by Get if set.
	// If nil, returns retrieval.ErrNotFound.
	GetFunc func(ctx context.Context, entityID string) (*core.RetrievalHit, error)

	// ListFunc is called by List if set.
	// If nil, returns no hits and no offset.
	ListFunc func(ctx context.Context, limit int, offset string) ([]core.RetrievalHit, string, error)

	// StatsFunc is called by Stats if set.
	// If nil, returns empty stats.
	StatsFunc func(ctx context.Context) (*retrieval.Stats, error)

	searchCalls []core.RetrievalRequest
}

var _ retrieval.Gateway = (*MockGateway)(nil)

// NewMockGateway creates a mock gateway with default behavior.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Search records the request and delegates to SearchFunc.
func (m *MockGateway) Search(ctx context.Context, req core.RetrievalRequest) ([]core.RetrievalHit, error) {
	m.searchCalls = append(m.searchCalls, req)

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return []core.RetrievalHit{}, nil
}

// Get delegates to GetFunc.
func (m *MockGateway) Get(ctx context.Context, entityID string) (*core.RetrievalHit, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, entityID)
	}
	return nil, retrieval.ErrNotFound
}

// List delegates to ListFunc.
func (m *MockGateway) List(ctx context.Context, limit int, offset string) ([]core.RetrievalHit, string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []core.RetrievalHit{}, "", nil
}

// Stats delegates to StatsFunc.
func (m *MockGateway) Stats(ctx context.Context) (*retrieval.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &retrieval.Stats{}, nil
}

// SearchCalls returns the requests Search has seen, in order.
func (m *MockGateway) SearchCalls() []core.RetrievalRequest {
	return m.searchCalls
}

// Reset clears recorded calls and custom functions.
func (m *MockGateway) Reset() {
	m.searchCalls = nil
	m.SearchFunc = nil
	m.GetFunc = nil
	m.ListFunc = nil
	m.StatsFunc = nil
}
