package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuri-moraes/agente-ia/vector"
)

// fakeControlPlane emulates the Pinecone control and data planes on one
// httptest server. The store is pointed at it via BaseURL, and the returned
// index host is the same server's URL so data-plane calls land here too.
type fakeControlPlane struct {
	srv *httptest.Server

	exists  bool
	created int
	upserts []UpsertRequest
	queries []QueryRequest
	matches []QueryMatch
}

func newFakeControlPlane(t *testing.T, exists bool) *fakeControlPlane {
	f := &fakeControlPlane{exists: exists}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/indexes/"):
			if !f.exists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			desc := IndexDescription{Name: "manual", Host: f.srv.URL, Dimension: 3, Metric: "cosine"}
			desc.Status.Ready = true
			json.NewEncoder(w).Encode(desc)
		case r.Method == http.MethodPost && r.URL.Path == "/indexes":
			f.created++
			f.exists = true
			var req CreateIndexRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "cosine", req.Metric)
			desc := IndexDescription{Name: req.Name, Host: f.srv.URL, Dimension: req.Dimension}
			desc.Status.Ready = true
			json.NewEncoder(w).Encode(desc)
		case r.Method == http.MethodPost && r.URL.Path == "/vectors/upsert":
			var req UpsertRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.upserts = append(f.upserts, req)
			json.NewEncoder(w).Encode(UpsertResponse{UpsertedCount: int64(len(req.Vectors))})
		case r.Method == http.MethodPost && r.URL.Path == "/query":
			var req QueryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.queries = append(f.queries, req)
			json.NewEncoder(w).Encode(QueryResponse{Matches: f.matches})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func newTestStore(t *testing.T, f *fakeControlPlane) *Store {
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: f.srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	store, err := NewStore(client, StoreConfig{IndexName: "manual", ReadyTimeout: 5 * time.Second})
	require.NoError(t, err)
	return store
}

func TestEnsureIndexCreatesWhenAbsent(t *testing.T) {
	f := newFakeControlPlane(t, false)
	store := newTestStore(t, f)

	require.NoError(t, store.EnsureIndex(context.Background(), 3))
	assert.Equal(t, 1, f.created)

	// Second call sees the existing index and does not recreate it.
	require.NoError(t, store.EnsureIndex(context.Background(), 3))
	assert.Equal(t, 1, f.created)
}

func TestUpsertAndQueryRoundTrip(t *testing.T) {
	f := newFakeControlPlane(t, true)
	f.matches = []QueryMatch{
		{ID: "chunk-0", Score: 0.93, Metadata: map[string]any{"text": "A bateria dura 10 horas."}},
		{ID: "chunk-1", Score: 0.81, Metadata: map[string]any{"text": "Carregue por 2 horas.", "page": float64(3)}},
	}
	store := newTestStore(t, f)
	ctx := context.Background()

	err := store.Upsert(ctx, []vector.Item{
		{ID: "chunk-0", Values: []float32{1, 0, 0}, Metadata: map[string]string{"text": "A bateria dura 10 horas."}},
	})
	require.NoError(t, err)
	require.Len(t, f.upserts, 1)
	assert.Equal(t, "chunk-0", f.upserts[0].Vectors[0].ID)
	assert.Equal(t, "A bateria dura 10 horas.", f.upserts[0].Vectors[0].Metadata["text"])

	matches, err := store.Query(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "chunk-0", matches[0].ID)
	assert.Equal(t, "A bateria dura 10 horas.", matches[0].Metadata["text"])
	// Non-string metadata values are dropped, not fatal.
	_, hasPage := matches[1].Metadata["page"]
	assert.False(t, hasPage)
	assert.Equal(t, "Carregue por 2 horas.", matches[1].Metadata["text"])

	require.Len(t, f.queries, 1)
	assert.True(t, f.queries[0].IncludeMetadata)
	assert.Equal(t, 3, f.queries[0].TopK)
}

func TestQueryMissingIndex(t *testing.T) {
	f := newFakeControlPlane(t, false)
	store := newTestStore(t, f)

	_, err := store.Query(context.Background(), []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, vector.ErrIndexNotFound)
}

func TestClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
