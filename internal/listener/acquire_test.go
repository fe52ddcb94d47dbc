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

package listener

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeListen fails for every port in busy and binds an ephemeral port otherwise.
func fakeListen(t *testing.T, busy map[int]bool, tried *[]int) func(string, string) (net.Listener, error) {
	t.Helper()
	return func(network, addr string) (net.Listener, error) {
		_, portStr, err := net.SplitHostPort(addr)
		require.NoError(t, err)
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)
		*tried = append(*tried, port)

		if busy[port] {
			return nil, &net.OpError{Op: "listen", Net: network, Err: syscall.EADDRINUSE}
		}
		return net.Listen(network, "127.0.0.1:0")
	}
}

func withListen(t *testing.T, fn func(string, string) (net.Listener, error)) {
	t.Helper()
	orig := listen
	listen = fn
	t.Cleanup(func() { listen = orig })
}

func TestAcquire_SkipsOccupiedPorts(t *testing.T) {
	const start = 9527
	var tried []int
	withListen(t, fakeListen(t, map[int]bool{start: true, start + 1: true, start + 2: true}, &tried))

	ln, port, err := Acquire("127.0.0.1", start, 4, discardLogger())
	require.NoError(t, err)
	defer ln.Close()

	assert.Equal(t, start+3, port)
	assert.Equal(t, []int{start, start + 1, start + 2, start + 3}, tried)
}

func TestAcquire_FirstPortFree(t *testing.T) {
	var tried []int
	withListen(t, fakeListen(t, nil, &tried))

	ln, port, err := Acquire("127.0.0.1", 8000, DefaultMaxAttempts, discardLogger())
	require.NoError(t, err)
	defer ln.Close()

	assert.Equal(t, 8000, port)
	assert.Len(t, tried, 1)
}

func TestAcquire_ExhaustsAttempts(t *testing.T) {
	busy := make(map[int]bool)
	for p := 7000; p < 7010; p++ {
		busy[p] = true
	}
	var tried []int
	withListen(t, fakeListen(t, busy, &tried))

	ln, port, err := Acquire("127.0.0.1", 7000, 10, discardLogger())
	require.Error(t, err)
	assert.Nil(t, ln)
	assert.Zero(t, port)
	assert.True(t, errors.Is(err, syscall.EADDRINUSE))
	assert.Contains(t, err.Error(), "between 7000 and 7009")
	assert.Len(t, tried, 10)
}

func TestAcquire_ExhaustionLeavesErrorToCaller(t *testing.T) {
	busy := map[int]bool{7100: true, 7101: true}
	var tried []int
	withListen(t, fakeListen(t, busy, &tried))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, _, err := Acquire("127.0.0.1", 7100, 2, logger)
	require.Error(t, err)

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("level=WARN")))
	assert.NotContains(t, out, "level=ERROR")
}

func TestAcquire_StopsAtHighestPort(t *testing.T) {
	busy := map[int]bool{65534: true, 65535: true}
	var tried []int
	withListen(t, fakeListen(t, busy, &tried))

	_, _, err := Acquire("127.0.0.1", 65534, 10, discardLogger())
	require.Error(t, err)
	assert.Equal(t, []int{65534, 65535}, tried)
}

func TestAcquire_RealSocket(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()
	taken := occupied.Addr().(*net.TCPAddr).Port
	if taken+5 > maxPort {
		t.Skip("ephemeral port too close to the top of the range")
	}

	ln, port, err := Acquire("127.0.0.1", taken, 5, discardLogger())
	require.NoError(t, err)
	defer ln.Close()

	assert.Greater(t, port, taken)
	assert.Less(t, port, taken+5)
	assert.Equal(t, port, ln.Addr().(*net.TCPAddr).Port)
}
