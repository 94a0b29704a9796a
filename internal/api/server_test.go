package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/megsikon/kanban-server/internal/repo"
	"github.com/megsikon/kanban-server/internal/store"
	"github.com/megsikon/kanban-server/internal/store/sqlite"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store store.Store
}

// newTestServer creates a server over a temporary store.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	repos := &Repositories{
		Tags:  repo.NewTagRepository(s, logger),
		Users: repo.NewUserRepository(s, logger),
		Items: repo.NewWorkItemRepository(s, logger),
	}

	srv := NewServer(repos, logger)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.api),
		store:  s,
	}
}

// decode unmarshals a JSON response body into out.
func decode(t *testing.T, data []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	decode(t, resp.Body.Bytes(), &body)
	require.Equal(t, "ok", body.Status)
}
