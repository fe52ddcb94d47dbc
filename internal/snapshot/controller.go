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
	"log/slog"
	"sync"
	"time"

	"github.com/phuonguno98/unomon/internal/thermal"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultWindow is how long a snapshot is served before it is recomputed.
const DefaultWindow = 1000 * time.Millisecond

// CacheStatus reports whether a snapshot was reused or recomputed.
type CacheStatus string

// Cache statuses.
const (
	Hit  CacheStatus = "Hit"
	Miss CacheStatus = "Miss"
)

// Controller serves the most recent snapshot and recomputes it at most once
// per freshness window. A single mutex covers the freshness check and the
// whole recomputation, so concurrent callers never recompute in parallel and
// never observe a half-built snapshot.
type Controller struct {
	source  Source
	history *thermal.History
	window  time.Duration
	logger  *slog.Logger

	mu         sync.Mutex
	cached     *metrics.Snapshot
	capturedAt time.Time
}

// NewController creates a controller that queries source on a miss and
// appends every recomputation's temperatures to history.
func NewController(source Source, history *thermal.History, window time.Duration, logger *slog.Logger) *Controller {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Controller{
		source:  source,
		history: history,
		window:  window,
		logger:  logger,
	}
}

// Get returns the cached snapshot when it is younger than the window at now,
// otherwise it recomputes, stores and returns a new one. The returned
// snapshot is shared and must not be modified.
func (c *Controller) Get(now time.Time) (*metrics.Snapshot, CacheStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && now.Sub(c.capturedAt) < c.window {
		return c.cached, Hit
	}

	start := time.Now()
	snap := c.recompute(now)
	c.cached = snap
	c.capturedAt = now

	c.logger.Debug("Snapshot recomputed",
		"duration", time.Since(start),
		"temperatures", len(snap.Temperatures),
	)

	return snap, Miss
}

// Window returns the freshness window.
func (c *Controller) Window() time.Duration {
	return c.window
}

// category runs one Source query and falls back to unavailable on error.
func category[T any](c *Controller, name string, query func() (T, error), unavailable T) T {
	v, err := query()
	if err != nil {
		c.logger.Warn("Metric category unavailable", "category", name, "error", err)
		return unavailable
	}
	return v
}

// recompute must be called with c.mu held.
func (c *Controller) recompute(now time.Time) *metrics.Snapshot {
	cpu := category(c, "cpu", c.source.CPU, metrics.CPUInfo{})
	mem := category(c, "memory", c.source.Memory, metrics.MemoryInfo{})
	host := category(c, "host", c.source.Host, metrics.HostInfo{})
	disks := category(c, "disks", c.source.Disks, nil)
	diskIO := category(c, "disk_io", c.source.DiskIO, nil)
	networks := category(c, "networks", c.source.Networks, nil)
	netStats := category(c, "network_stats", c.source.NetworkStats, metrics.NetworkStats{})
	rawTemps := category(c, "temperatures", c.source.Temperatures, nil)
	power := category(c, "power", c.source.Power, metrics.PowerInfo{})
	gpu := category(c, "gpu", c.source.GPU, nil)
	procs := category(c, "processes", c.source.Processes, metrics.ProcessSummary{})
	perf := category(c, "performance", c.source.Performance, metrics.PerformanceMetrics{})

	temps, warnings := thermal.ClassifyAll(rawTemps)
	if len(warnings) > 0 {
		c.logger.Warn("Temperature warnings", "warnings", warnings)
	}
	c.history.Append(metrics.HistoryEntry{Timestamp: now, Readings: temps})

	snap := &metrics.Snapshot{
		CPUUsage:         nonNil(cpu.Usage),
		CPUTemp:          thermal.CPUTemperature(temps),
		CPUBrand:         cpu.Brand,
		CPUFrequency:     nonNil(cpu.Frequency),
		CPUCores:         cpu.LogicalCores,
		CPUPhysicalCores: cpu.PhysicalCores,
		CPUVendorID:      cpu.VendorID,
		CPULoadAvg:       host.LoadAverage,

		GPUInfo: gpu,

		MemoryTotal:     mem.Total,
		MemoryUsed:      mem.Used,
		MemoryFree:      mem.Free,
		MemoryAvailable: mem.Available,
		MemoryUsage:     metrics.Percentage(mem.Used, mem.Total),
		SwapTotal:       mem.SwapTotal,
		SwapUsed:        mem.SwapUsed,
		SwapFree:        mem.SwapFree,
		SwapUsage:       metrics.Percentage(mem.SwapUsed, mem.SwapTotal),

		Disks:       nonNil(disks),
		DiskIOStats: nonNil(diskIO),

		SystemName:    optional(host.SystemName),
		KernelVersion: optional(host.KernelVersion),
		OSVersion:     optional(host.OSVersion),
		HostName:      optional(host.HostName),
		BootTime:      host.BootTime,
		Uptime:        host.Uptime,
		LoadAverage:   host.LoadAverage,

		ProcessCount:        procs.ProcessCount,
		ThreadCount:         procs.ThreadCount,
		RunningProcessCount: procs.RunningCount,
		ProcessStats:        procs.Stats,

		Temperatures: temps,
		TempWarnings: warnings,
		Timestamp:    now,

		Networks:     nonNil(networks),
		NetworkStats: normalizeNetworkStats(netStats),

		PowerInfo:          power,
		PerformanceMetrics: perf,
	}

	for _, d := range snap.Disks {
		snap.TotalDiskSpace += d.TotalSpace
		snap.TotalDiskFree += d.AvailableSpace
		if d.TotalSpace > d.AvailableSpace {
			snap.TotalDiskUsed += d.TotalSpace - d.AvailableSpace
		}
	}
	for _, n := range snap.Networks {
		snap.TotalRxBytes += n.ReceivedBytes
		snap.TotalTxBytes += n.TransmittedBytes
	}

	return snap
}

// nonNil keeps unavailable list categories rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizeNetworkStats(ns metrics.NetworkStats) metrics.NetworkStats {
	ns.TCPListenPorts = nonNil(ns.TCPListenPorts)
	ns.UDPListenPorts = nonNil(ns.UDPListenPorts)
	ns.InterfaceStats = nonNil(ns.InterfaceStats)
	return ns
}
