package querent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/poiesic/querent/ai/mock"
	"github.com/poiesic/querent/config"
	"github.com/poiesic/querent/core"
	retmock "github.com/poiesic/querent/retrieval/mock"
	"github.com/poiesic/querent/router"
)

func newTestServices(t *testing.T, gateway *retmock.MockGateway) *Services {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Cache.Enabled = false

	services, err := New(cfg,
		WithProvider(aimock.NewMockProvider()),
		WithGateway(gateway),
	)
	require.NoError(t, err)
	t.Cleanup(func() { services.Close() })
	return services
}

func TestQueryText(t *testing.T) {
	ctx := context.Background()

	gateway := retmock.NewMockGateway()
	gateway.SearchFunc = func(ctx context.Context, req core.RetrievalRequest) ([]core.RetrievalHit, error) {
		return []core.RetrievalHit{{EntityID: "100002", Score: 0.91}}, nil
	}
	services := newTestServices(t, gateway)

	hits, err := services.Query(ctx, "young female applicants with no defaults", router.RouteOptions{TopK: 3})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "100002", hits[0].EntityID)
	assert.Equal(t, core.KindText, hits[0].Query.Kind)

	calls := gateway.SearchCalls()
	require.Len(t, calls, 1)
	// The mock parser echoes the query, so the raw words reach the search.
	assert.Equal(t, "young female applicants with no defaults", calls[0].QueryVectorText)
	assert.Equal(t, 3, calls[0].TopK)
}

func TestQueryPathLikeText(t *testing.T) {
	ctx := context.Background()

	gateway := retmock.NewMockGateway()
	services := newTestServices(t, gateway)

	// A query that mentions a nonexistent file stays a text query.
	_, err := services.Query(ctx, "compare against baseline.pdf", router.RouteOptions{})
	require.NoError(t, err)

	calls := gateway.SearchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "compare against baseline.pdf", calls[0].QueryVectorText)
}

func TestQueryUnreadableDocument(t *testing.T) {
	ctx := context.Background()

	gateway := retmock.NewMockGateway()
	services := newTestServices(t, gateway)

	// An existing but malformed PDF routes to the document pipeline and
	// comes back empty rather than erroring.
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	hits, err := services.Query(ctx, path, router.RouteOptions{})
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Empty(t, gateway.SearchCalls())
}

func TestServicesAccessors(t *testing.T) {
	gateway := retmock.NewMockGateway()
	services := newTestServices(t, gateway)

	assert.NotNil(t, services.Router())
	assert.NotNil(t, services.Gateway())
	assert.NotNil(t, services.Config())
	assert.Equal(t, 5, services.Config().TopK)
}
