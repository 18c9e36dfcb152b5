package mock

import (
	"context"

	"github.com/poiesic/querent/core"
)

// MockIntentParser is a test double for ai.IntentParser.
// It allows custom behavior injection via function fields.
type MockIntentParser struct {
	// ParseQueryFunc is called by ParseQuery if set.
	// If nil, echoes the query back with no filters.
	ParseQueryFunc func(ctx context.Context, query string) (core.ResolvedIntent, error)

	callCount int
}

// NewMockIntentParser creates a mock intent parser with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockIntentParser().
func NewMockIntentParser() *MockIntentParser {
	return &MockIntentParser{}
}

// ParseQuery returns a pass-through intent unless a custom function is set.
func (m *MockIntentParser) ParseQuery(ctx context.Context, query string) (core.ResolvedIntent, error) {
	m.callCount++

	if m.ParseQueryFunc != nil {
		return m.ParseQueryFunc(ctx, query)
	}

	return core.ResolvedIntent{
		SearchText:         query,
		Filters:            core.Filters{},
		DetectedAttributes: []string{},
	}, nil
}

// CallCount returns the number of times ParseQuery was called.
func (m *MockIntentParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockIntentParser) Reset() {
	m.callCount = 0
	m.ParseQueryFunc = nil
}
