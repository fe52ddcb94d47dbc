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

package snapshot

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/internal/snapshot/snapshottest"
	"github.com/phuonguno98/unomon/internal/thermal"
	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(src Source, window time.Duration) (*Controller, *thermal.History) {
	h := thermal.NewHistory(thermal.DefaultHistorySize)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewController(src, h, window, logger), h
}

func TestController_HitWithinWindow(t *testing.T) {
	src := snapshottest.New()
	c, _ := newTestController(src, DefaultWindow)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, status := c.Get(t0)
	require.Equal(t, Miss, status)

	src.SetTemps([]metrics.RawTemperature{{Label: "cpu", Value: 99}})

	for _, offset := range []time.Duration{0, 10 * time.Millisecond, 999 * time.Millisecond} {
		snap, status := c.Get(t0.Add(offset))
		assert.Equal(t, Hit, status, "offset %v", offset)
		assert.Same(t, first, snap)
	}
	assert.Equal(t, 1, src.Calls())
}

func TestController_MissAfterWindow(t *testing.T) {
	src := snapshottest.New()
	c, _ := newTestController(src, DefaultWindow)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, _ := c.Get(t0)
	src.SetTemps([]metrics.RawTemperature{{Label: "cpu", Value: 99}})

	second, status := c.Get(t0.Add(DefaultWindow))
	assert.Equal(t, Miss, status)
	assert.NotSame(t, first, second)
	require.Len(t, second.Temperatures, 1)
	assert.Equal(t, 99.0, second.Temperatures[0].Temp)
	assert.Equal(t, t0.Add(DefaultWindow), second.Timestamp)

	// The window restarts at the recomputation time.
	_, status = c.Get(t0.Add(DefaultWindow + 500*time.Millisecond))
	assert.Equal(t, Hit, status)
	assert.Equal(t, 2, src.Calls())
}

func TestController_AssemblesSnapshot(t *testing.T) {
	src := snapshottest.New()
	c, _ := newTestController(src, DefaultWindow)
	now := time.Now().UTC()

	snap, _ := c.Get(now)

	assert.Equal(t, []float64{12.5, 30}, snap.CPUUsage)
	assert.Equal(t, "Test CPU", snap.CPUBrand)
	assert.Equal(t, 2, snap.CPUCores)
	assert.Equal(t, 25.0, snap.MemoryUsage)
	assert.Equal(t, 0.0, snap.SwapUsage)
	assert.Equal(t, uint64(100), snap.TotalDiskSpace)
	assert.Equal(t, uint64(60), snap.TotalDiskUsed)
	assert.Equal(t, uint64(40), snap.TotalDiskFree)
	assert.Equal(t, uint64(100), snap.TotalRxBytes)
	assert.Equal(t, uint64(50), snap.TotalTxBytes)
	require.NotNil(t, snap.HostName)
	assert.Equal(t, "testhost", *snap.HostName)
	assert.Nil(t, snap.KernelVersion)
	assert.Equal(t, 0.5, snap.CPULoadAvg.One)

	require.NotNil(t, snap.CPUTemp)
	assert.Equal(t, 55.0, *snap.CPUTemp)
	require.Len(t, snap.Temperatures, 2)
	assert.Equal(t, metrics.TierWarning, snap.Temperatures[1].Status)
	assert.Equal(t, []string{"nvme temperature is getting high: 75.0°C"}, snap.TempWarnings)
}

func TestController_CategoryFailureUsesUnavailable(t *testing.T) {
	src := snapshottest.New()
	src.Fail = map[string]bool{
		"disks":         true,
		"gpu":           true,
		"memory":        true,
		"temperatures":  true,
		"network_stats": true,
	}
	c, h := newTestController(src, DefaultWindow)

	snap, status := c.Get(time.Now())
	require.Equal(t, Miss, status)

	assert.NotNil(t, snap.Disks)
	assert.Empty(t, snap.Disks)
	assert.Zero(t, snap.TotalDiskSpace)
	assert.Nil(t, snap.GPUInfo)
	assert.Zero(t, snap.MemoryTotal)
	assert.Zero(t, snap.MemoryUsage)
	assert.NotNil(t, snap.Temperatures)
	assert.Empty(t, snap.Temperatures)
	assert.Nil(t, snap.CPUTemp)
	assert.NotNil(t, snap.NetworkStats.TCPListenPorts)

	// Other categories are still populated.
	assert.Equal(t, "Test CPU", snap.CPUBrand)
	assert.Len(t, snap.Networks, 1)
	assert.Equal(t, 42, snap.ProcessCount)

	// A failed temperature query still records one (empty) history entry.
	entries := h.Entries()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Readings)
}

func TestController_LogsDegradationAtWarnLevel(t *testing.T) {
	src := snapshottest.New()
	src.Fail = map[string]bool{"disks": true}
	src.SetTemps([]metrics.RawTemperature{
		{Label: "cpu", Value: 85},
		{Label: "nvme", Value: 72},
		{Label: "board", Value: 40},
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewController(src, thermal.NewHistory(thermal.DefaultHistorySize), DefaultWindow, logger)

	_, status := c.Get(time.Now())
	require.Equal(t, Miss, status)

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg="Metric category unavailable" category=disks`)
	assert.Contains(t, out, `level=WARN msg="Temperature warnings"`)
	assert.Contains(t, out, "cpu temperature is too high: 85.0°C")
	assert.Contains(t, out, "nvme temperature is getting high: 72.0°C")
	assert.NotContains(t, out, "board temperature")
	assert.NotContains(t, out, "level=ERROR")
}

func TestController_NoWarningsWhenHealthy(t *testing.T) {
	src := snapshottest.New()
	src.SetTemps([]metrics.RawTemperature{{Label: "cpu", Value: 45}})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewController(src, thermal.NewHistory(thermal.DefaultHistorySize), DefaultWindow, logger)

	c.Get(time.Now())

	assert.NotContains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestController_AppendsOneHistoryEntryPerMiss(t *testing.T) {
	src := snapshottest.New()
	c, h := newTestController(src, DefaultWindow)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		at := t0.Add(time.Duration(i) * 2 * time.Second)
		snap, status := c.Get(at)
		require.Equal(t, Miss, status)
		c.Get(at.Add(100 * time.Millisecond)) // hit, no new entry

		entries := h.Entries()
		require.Len(t, entries, i+1)
		last := entries[len(entries)-1]
		assert.Equal(t, snap.Timestamp, last.Timestamp)
		assert.Equal(t, snap.Temperatures, last.Readings)
	}
}

func TestController_HistoryBoundedAfterManyMisses(t *testing.T) {
	src := snapshottest.New()
	c, h := newTestController(src, DefaultWindow)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < thermal.DefaultHistorySize+1; i++ {
		c.Get(t0.Add(time.Duration(i) * DefaultWindow))
	}

	entries := h.Entries()
	require.Len(t, entries, thermal.DefaultHistorySize)
	assert.Equal(t, t0.Add(DefaultWindow), entries[0].Timestamp)
	assert.Equal(t, t0.Add(thermal.DefaultHistorySize*DefaultWindow), entries[len(entries)-1].Timestamp)
}

func TestController_SerializesRecomputation(t *testing.T) {
	src := snapshottest.New()
	src.Delay = 5 * time.Millisecond
	// A window of 1ns makes practically every call a miss.
	c, _ := newTestController(src, time.Nanosecond)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				snap, _ := c.Get(time.Now())
				assert.NotNil(t, snap)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.MaxInFlight(), "recomputations must never overlap")
	assert.Greater(t, src.Calls(), 1)
}

func TestController_ConcurrentReadersShareOneRecomputation(t *testing.T) {
	src := snapshottest.New()
	src.Delay = 20 * time.Millisecond
	c, _ := newTestController(src, time.Hour)
	now := time.Now()

	var wg sync.WaitGroup
	results := make([]*metrics.Snapshot, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Get(now)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, src.Calls())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestNewController_DefaultWindow(t *testing.T) {
	c, _ := newTestController(snapshottest.New(), 0)
	assert.Equal(t, DefaultWindow, c.Window())
}
