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

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/phuonguno98/unomon/internal/collector"
	"github.com/phuonguno98/unomon/internal/config"
	"github.com/phuonguno98/unomon/internal/listener"
	"github.com/phuonguno98/unomon/internal/server"
	"github.com/phuonguno98/unomon/internal/snapshot"
	"github.com/phuonguno98/unomon/internal/thermal"
	"github.com/phuonguno98/unomon/pkg/version"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the monitoring API server",
	Long: `Start the HTTP API that serves host metrics.

Endpoints:
  GET /api/system               Current snapshot (X-Cache-Status: Hit|Miss)
  GET /api/health               Liveness probe
  GET /api/temperature/history  Recent classified temperature readings

The first free port starting at --port (or $PORT, default 9527) is used.

Examples:
  # Serve on the default port
  unomon serve

  # Listen on all interfaces, skipping loopback and docker bridges
  unomon serve --host 0.0.0.0 --exclude-networks "lo,docker0"`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	config.RegisterFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)
	for _, w := range cfg.Warnings {
		logger.Warn("Configuration warning", "detail", w)
	}

	logger.Info("Starting UnoMon",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	checkPlatformCapabilities(logger)

	system := collector.NewSystem(cfg, logger)
	defer func() {
		if err := system.Close(); err != nil {
			logger.Error("Failed to close collectors", "error", err)
		}
	}()
	system.Baseline()

	history := thermal.NewHistory(cfg.HistorySize)
	controller := snapshot.NewController(system, history, cfg.CacheWindow, logger)

	ln, port, err := listener.Acquire(cfg.Host, cfg.Port, cfg.MaxPortAttempts, logger)
	if err != nil {
		logger.Error("Failed to start server", "error", err)
		return err
	}

	httpServer := &http.Server{
		Handler:      server.NewServer(controller, history, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("Received signal, initiating shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("UnoMon is running", "url", fmt.Sprintf("http://%s:%d", cfg.Host, port))

	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

// checkPlatformCapabilities logs platform-specific capability warnings.
func checkPlatformCapabilities(logger *slog.Logger) {
	switch runtime.GOOS {
	case osLinux:
		logger.Info("Running on Linux: All metrics available")
	case osDarwin:
		logger.Info("Running on macOS: power and interrupt metrics are not available")
	case osWindows:
		logger.Warn("Running on Windows: power, interrupt and sensor metrics are not available")
	default:
		logger.Warn("Running on unsupported platform, some metrics may not work", "os", runtime.GOOS)
	}
}
