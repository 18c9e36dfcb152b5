package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/querent/ai/mock"
	"github.com/poiesic/querent/core"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("parser result passes through", func(t *testing.T) {
		parser := mock.NewMockIntentParser()
		parser.ParseQueryFunc = func(ctx context.Context, query string) (core.ResolvedIntent, error) {
			return core.ResolvedIntent{
				SearchText:         "female applicants",
				Filters:            core.Filters{"CODE_GENDER": core.Exact("F")},
				DetectedAttributes: []string{"gender: F"},
				Intent:             "default",
			}, nil
		}
		resolver := NewResolver(parser)

		resolved := resolver.Resolve(ctx, "show me women who defaulted")
		assert.Equal(t, "female applicants", resolved.SearchText)
		assert.Equal(t, core.Exact("F"), resolved.Filters["CODE_GENDER"])
		assert.Equal(t, "default", resolved.Intent)
	})

	t.Run("parser failure falls back to raw query", func(t *testing.T) {
		parser := mock.NewMockIntentParser()
		parser.ParseQueryFunc = func(ctx context.Context, query string) (core.ResolvedIntent, error) {
			return core.ResolvedIntent{}, errors.New("model unreachable")
		}
		resolver := NewResolver(parser)

		resolved := resolver.Resolve(ctx, "pensioners with children")
		assert.Equal(t, "pensioners with children", resolved.SearchText)
		assert.Empty(t, resolved.Filters)
		assert.Empty(t, resolved.DetectedAttributes)
	})

	t.Run("nil parser falls back", func(t *testing.T) {
		resolver := NewResolver(nil)

		resolved := resolver.Resolve(ctx, "anything at all")
		assert.Equal(t, "anything at all", resolved.SearchText)
		assert.NotNil(t, resolved.Filters)
	})

	t.Run("empty search text replaced with query", func(t *testing.T) {
		parser := mock.NewMockIntentParser()
		parser.ParseQueryFunc = func(ctx context.Context, query string) (core.ResolvedIntent, error) {
			return core.ResolvedIntent{}, nil
		}
		resolver := NewResolver(parser)

		resolved := resolver.Resolve(ctx, "original words")
		assert.Equal(t, "original words", resolved.SearchText)
		assert.NotNil(t, resolved.Filters)
		assert.NotNil(t, resolved.DetectedAttributes)
	})
}
