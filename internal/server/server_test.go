/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/internal/snapshot"
	"github.com/phuonguno98/unomon/internal/snapshot/snapshottest"
	"github.com/phuonguno98/unomon/internal/thermal"
	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *thermal.History, *time.Time) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	history := thermal.NewHistory(thermal.DefaultHistorySize)
	controller := snapshot.NewController(snapshottest.New(), history, snapshot.DefaultWindow, logger)

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := NewServer(controller, history, logger)
	srv.now = func() time.Time { return clock }

	return srv, history, &clock
}

func get(t *testing.T, srv *Server, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w.Result()
}

func TestServer_SystemThenHistory(t *testing.T) {
	srv, history, _ := newTestServer(t)
	require.Equal(t, 0, history.Len())

	resp := get(t, srv, "/api/system")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap metrics.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))

	resp = get(t, srv, "/api/temperature/history")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []metrics.HistoryEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Timestamp.Equal(snap.Timestamp))
	assert.Equal(t, snap.Temperatures, entries[0].Readings)
	require.Len(t, snap.Temperatures, 2)
	assert.Equal(t, metrics.TierWarning, snap.Temperatures[1].Status)
}

func TestServer_CacheStatusHeader(t *testing.T) {
	srv, history, clock := newTestServer(t)

	resp := get(t, srv, "/api/system")
	assert.Equal(t, "Miss", resp.Header.Get(CacheStatusHeader))

	*clock = clock.Add(500 * time.Millisecond)
	resp = get(t, srv, "/api/system")
	assert.Equal(t, "Hit", resp.Header.Get(CacheStatusHeader))

	*clock = clock.Add(600 * time.Millisecond)
	resp = get(t, srv, "/api/system")
	assert.Equal(t, "Miss", resp.Header.Get(CacheStatusHeader))

	assert.Equal(t, 2, history.Len())
}

func TestServer_Health(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "OK", health.Status)

	ts, err := time.Parse(time.RFC3339Nano, health.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, "2026-01-02T03:04:05Z", health.Timestamp)
}

func TestServer_EmptyHistory(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv, "/api/temperature/history")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestServer_CORS(t *testing.T) {
	srv, history, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/system", http.NoBody)
	req.Header.Set("Origin", "http://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "X-Custom", resp.Header.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, 0, history.Len(), "preflight must not trigger a recompute")

	resp = get(t, srv, "/api/health")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_RequestID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv, "/api/health")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Result().Header.Get("X-Request-ID"))
}

func TestServer_Version(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv, "/api/version")
	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "commit")
}

func TestServer_HistoryCSV(t *testing.T) {
	srv, _, _ := newTestServer(t)

	get(t, srv, "/api/system")

	resp := get(t, srv, "/api/temperature/history.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,CPU Package (°C),nvme (°C)\n2026-01-02 03:04:05,55.0,75.0\n", string(body))
}

func TestServer_UnknownRoute(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
