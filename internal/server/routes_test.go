package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapview/internal/config"
	"github.com/leapstack-labs/leapview/internal/state"
	"github.com/leapstack-labs/leapview/internal/testutil"
)

func testServer(t *testing.T) (*Server, *state.SQLiteStore, string) {
	t.Helper()

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	cfg := &config.Config{ProjectRoot: t.TempDir()}
	cfg.ApplyDefaults()
	cfg.ResolvePaths()

	srv := New(Options{Config: cfg, Store: store, Logger: testutil.NewTestLogger(t)})
	return srv, store, cfg.ProjectRoot
}

func recordTestScenario(t *testing.T, store *state.SQLiteStore, dir, key string) string {
	t.Helper()
	outputPath := filepath.Join(dir, key+".json")
	doc := `{"key":"` + key + `","version":"1.0.0","main":{"type":"Screen"},"components":{}}`
	require.NoError(t, os.WriteFile(outputPath, []byte(doc), 0o644))
	require.NoError(t, store.RecordScenario(&state.ScenarioRecord{
		Key:        key,
		Name:       "Demo",
		Version:    "1.0.0",
		SourcePath: "src/" + key + ".lsx",
		OutputPath: outputPath,
		CompiledAt: time.Now().UTC(),
	}, nil))
	return outputPath
}

func serveRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	r := chi.NewMux()
	srv.routes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestListScenarios(t *testing.T) {
	srv, store, dir := testServer(t)
	recordTestScenario(t, store, dir, "demo")

	rec := serveRequest(srv, http.MethodGet, "/api/scenarios")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Scenarios []scenarioSummary `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Scenarios, 1)
	assert.Equal(t, "demo", body.Scenarios[0].Key)
	assert.Equal(t, "Demo", body.Scenarios[0].Name)
}

func TestListScenariosEmpty(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := serveRequest(srv, http.MethodGet, "/api/scenarios")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"scenarios":[]}`, rec.Body.String())
}

func TestGetScenarioServesDocument(t *testing.T) {
	srv, store, dir := testServer(t)
	recordTestScenario(t, store, dir, "demo")

	rec := serveRequest(srv, http.MethodGet, "/api/scenarios/demo")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "demo", doc["key"])
}

func TestGetScenarioNotFound(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := serveRequest(srv, http.MethodGet, "/api/scenarios/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetScenarioRejectsBadKey(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := serveRequest(srv, http.MethodGet, "/api/scenarios/bad.key!")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifierBroadcast(t *testing.T) {
	n := NewNotifier()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	n.Broadcast()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("listener did not receive broadcast")
	}
}
