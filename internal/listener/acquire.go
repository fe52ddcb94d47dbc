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

// Package listener binds the HTTP listening socket, probing upward from a
// preferred port when it is already taken.
package listener

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"syscall"
)

const (
	// DefaultPort is the first port tried when none is configured.
	DefaultPort = 9527
	// DefaultMaxAttempts bounds the linear probe.
	DefaultMaxAttempts = 100

	maxPort = 65535
)

// Dependency injection point for testing
var listen = net.Listen

// Acquire tries host:start, host:start+1, ... for up to attempts ports and
// returns the first listener that binds together with its port. When every
// attempt fails the returned error wraps syscall.EADDRINUSE and names the
// range that was tried.
func Acquire(host string, start, attempts int, logger *slog.Logger) (net.Listener, int, error) {
	if attempts < 1 {
		attempts = 1
	}

	port := start
	for i := 0; i < attempts && port <= maxPort; i++ {
		ln, err := listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			logger.Info("Successfully bound to port", "port", port)
			return ln, port, nil
		}
		logger.Warn("Port is in use, trying next port", "port", port, "error", err)
		port++
	}

	return nil, 0, fmt.Errorf("failed to bind to any port between %d and %d: %w",
		start, port-1, syscall.EADDRINUSE)
}
