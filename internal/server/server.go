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
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/phuonguno98/unomon/internal/exporter"
	"github.com/phuonguno98/unomon/internal/snapshot"
	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/phuonguno98/unomon/pkg/version"
)

// CacheStatusHeader reports whether /api/system served a reused snapshot.
const CacheStatusHeader = "X-Cache-Status"

// SnapshotProvider returns the current snapshot and whether it was reused.
type SnapshotProvider interface {
	Get(now time.Time) (*metrics.Snapshot, snapshot.CacheStatus)
}

// HistoryReader exposes the retained temperature history, oldest first.
type HistoryReader interface {
	Entries() []metrics.HistoryEntry
}

// Server represents the monitoring API server.
type Server struct {
	snapshots SnapshotProvider
	history   HistoryReader
	logger    *slog.Logger
	router    *mux.Router
	now       func() time.Time
}

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewServer creates a new API server.
func NewServer(snapshots SnapshotProvider, history HistoryReader, logger *slog.Logger) *Server {
	s := &Server{
		snapshots: snapshots,
		history:   history,
		logger:    logger,
		router:    mux.NewRouter(),
		now:       time.Now,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)
	s.router.Use(s.loggingMiddleware)

	// OPTIONS is matched so the CORS middleware sees preflight requests.
	s.router.HandleFunc("/api/system", s.handleGetSystem).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/health", s.handleGetHealth).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/temperature/history", s.handleGetHistory).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/temperature/history.csv", s.handleGetHistoryCSV).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/version", s.handleGetVersion).Methods(http.MethodGet, http.MethodOptions)
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Expose-Headers", CacheStatusHeader)

		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			w.Header().Set("Access-Control-Allow-Headers", requested)
		} else {
			w.Header().Set("Access-Control-Allow-Headers", "*")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleGetSystem returns the current system snapshot, reusing the cached
// one while it is still fresh.
func (s *Server) handleGetSystem(w http.ResponseWriter, _ *http.Request) {
	snap, status := s.snapshots.Get(s.now())
	w.Header().Set(CacheStatusHeader, string(status))
	s.writeJSON(w, snap)
}

func (s *Server) handleGetHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:    "OK",
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	})
}

// handleGetHistory returns the temperature history, oldest entry first.
func (s *Server) handleGetHistory(w http.ResponseWriter, _ *http.Request) {
	entries := s.history.Entries()
	if entries == nil {
		entries = []metrics.HistoryEntry{}
	}
	s.writeJSON(w, entries)
}

// handleGetHistoryCSV returns the same history as a CSV download.
func (s *Server) handleGetHistoryCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="temperature_history.csv"`)
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := exporter.WriteHistoryCSV(w, s.history.Entries(), time.UTC); err != nil {
		s.logger.Error("Failed to write CSV response", "error", err)
	}
}

// handleGetVersion returns version information from the version package.
func (s *Server) handleGetVersion(w http.ResponseWriter, _ *http.Request) {
	versionInfo := map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	}
	s.writeJSON(w, versionInfo)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}
