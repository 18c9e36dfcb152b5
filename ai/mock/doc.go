// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.IntentParser,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockParser := mock.NewMockIntentParser()
//	mockParser.ParseQueryFunc = func(ctx context.Context, query string) (core.ResolvedIntent, error) {
//	    return core.ResolvedIntent{SearchText: query, Filters: core.Filters{"target": core.Exact(1)}}, nil
//	}
//
//	// Check call counts
//	count := mockParser.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockIntentParser: Echoes the query back with no filters
//   - MockProvider: Aggregates mock embedder and parser
package mock
