package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/courseplan/internal/planner"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func post(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+path, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func newTestServer(t *testing.T, catalogPath string) (*App, *httptest.Server) {
	t.Helper()
	testApp, _, _ := setupAppTest(t, Config{Command: CommandServe, CatalogPath: catalogPath, Listen: ":0"}, "")
	if catalogPath != "" {
		require.NoError(t, testApp.loadCatalog(context.Background()))
	}
	srv := httptest.NewServer(testApp.Handler())
	t.Cleanup(srv.Close)
	return testApp, srv
}

func TestServer_Health(t *testing.T) {
	_, srv := newTestServer(t, "")

	status, body := get(t, srv, "/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK\n", string(body))
}

func TestServer_Queries(t *testing.T) {
	_, srv := newTestServer(t, writeCatalog(t, sampleCatalog))

	t.Run("courses", func(t *testing.T) {
		status, body := get(t, srv, "/courses")
		require.Equal(t, http.StatusOK, status)

		var entries []planner.Entry
		require.NoError(t, json.Unmarshal(body, &entries))
		require.Len(t, entries, 6)
		assert.Equal(t, planner.Entry{Code: "CSCI100", Title: "Introduction to Computer Science"}, entries[0])
	})

	t.Run("course detail with normalized code", func(t *testing.T) {
		status, body := get(t, srv, "/courses/csci350")
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{
			"code": "CSCI350",
			"title": "Operating Systems",
			"prereqs": [
				{"code": "CSCI300", "title": "Introduction to Algorithms", "known": true},
				{"code": "PHYS999", "known": false}
			]
		}`, string(body))
	})

	t.Run("unknown course", func(t *testing.T) {
		status, body := get(t, srv, "/courses/NOPE1")
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error": "course not found", "query": "NOPE1"}`, string(body))
	})

	t.Run("order", func(t *testing.T) {
		status, body := get(t, srv, "/order")
		require.Equal(t, http.StatusOK, status)

		var plan planner.Plan
		require.NoError(t, json.Unmarshal(body, &plan))
		assert.True(t, plan.Complete)
		require.Len(t, plan.Courses, 6)
		assert.Equal(t, "CSCI100", plan.Courses[0].Code)
		assert.Equal(t, "CSCI350", plan.Courses[5].Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		status, _ := post(t, srv, "/courses")
		assert.Equal(t, http.StatusMethodNotAllowed, status)
	})
}

func TestServer_OrderWithCycle(t *testing.T) {
	_, srv := newTestServer(t, writeCatalog(t, cyclicCatalog))

	status, body := get(t, srv, "/order")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"courses": [{"code": "BASE1", "title": "Base"}],
		"complete": false,
		"blocked": ["A1", "B1"],
		"cycle": ["A1", "B1"]
	}`, string(body))
}

func TestServer_Reload(t *testing.T) {
	// --- Arrange ---
	path := writeCatalog(t, "CSCI100,Intro\n")
	testApp, srv := newTestServer(t, path)
	require.NoError(t, os.WriteFile(path, []byte("CSCI100,Intro\nCSCI101,Programming,CSCI100\nbroken\n"), 0o644))

	// --- Act ---
	status, body := post(t, srv, "/reload")

	// --- Assert ---
	require.Equal(t, http.StatusOK, status)
	var view reloadView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, path, view.Source)
	assert.Equal(t, 2, view.Courses)
	assert.Equal(t, 2, view.Records)
	assert.Equal(t, []string{path + ":3: loader: invalid record: expected at least a code and a title, got 1 field(s)"}, view.Skipped)
	assert.Equal(t, 2, testApp.Session().Catalog().Len())

	t.Run("failed reload keeps the catalog", func(t *testing.T) {
		require.NoError(t, os.Remove(path))

		status, body := post(t, srv, "/reload")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Contains(t, string(body), "catalog source unavailable")
		assert.Equal(t, 2, testApp.Session().Catalog().Len())

		status, _ = get(t, srv, "/courses/CSCI101")
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestServer_ReloadIgnoresPathParameter(t *testing.T) {
	// --- Arrange ---
	path := writeCatalog(t, sampleCatalog)
	other := writeCatalog(t, "ZZZ999,Elsewhere\n")
	testApp, srv := newTestServer(t, path)
	before := testApp.Session().Catalog().Len()

	// --- Act ---
	status, body := post(t, srv, "/reload?path="+url.QueryEscape(other))

	// --- Assert ---
	require.Equal(t, http.StatusOK, status)
	var view reloadView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, path, view.Source)
	assert.Equal(t, before, view.Courses)
	assert.False(t, testApp.Session().Catalog().Has("ZZZ999"))

	status, _ = get(t, srv, "/courses/ZZZ999")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_OrderLogsWithSession(t *testing.T) {
	// --- Arrange ---
	testApp, _, logs := setupAppTest(t, Config{Command: CommandServe, CatalogPath: writeCatalog(t, cyclicCatalog), Listen: ":0"}, "")
	require.NoError(t, testApp.loadCatalog(context.Background()))
	srv := httptest.NewServer(testApp.Handler())
	t.Cleanup(srv.Close)

	// --- Act ---
	status, _ := get(t, srv, "/order")

	// --- Assert ---
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, logs.String(), "Circular prerequisite dependency detected.")
	assert.Contains(t, logs.String(), "session_id="+testApp.Session().ID())
}

func TestServer_ReloadWithoutPath(t *testing.T) {
	_, srv := newTestServer(t, "")

	status, body := post(t, srv, "/reload")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error": "no catalog path configured"}`, string(body))
}

func TestRunServe_ShutsDownOnCancel(t *testing.T) {
	// --- Arrange ---
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	testApp, _, logs := setupAppTest(t, Config{Command: CommandServe, Listen: addr}, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- testApp.Run(ctx) }()

	// --- Act ---
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	// --- Assert ---
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logs.String(), "HTTP server shut down gracefully.")
}

func TestRunServe_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	testApp, _, _ := setupAppTest(t, Config{Command: CommandServe, Listen: l.Addr().String()}, "")

	err = testApp.Run(context.Background())

	assert.ErrorContains(t, err, "http server failed")
}
