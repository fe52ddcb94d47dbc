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

// Package collector implements the host metric source on top of gopsutil,
// NVML and the Linux sysfs tree.
package collector

import (
	"log/slog"

	"github.com/phuonguno98/unomon/internal/config"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

// System bundles one collector per metric category. Its methods are not
// safe for concurrent use; the snapshot controller serializes them.
type System struct {
	cpu         *CPUCollector
	memory      *MemoryCollector
	host        *HostCollector
	disk        *DiskCollector
	network     *NetworkCollector
	sensors     *SensorCollector
	power       *PowerCollector
	gpu         *GPUCollector
	process     *ProcessCollector
	performance *PerformanceCollector
	logger      *slog.Logger
}

// NewSystem creates the host metric source, applying the device filters from cfg.
func NewSystem(cfg *config.Config, logger *slog.Logger) *System {
	return &System{
		cpu:         NewCPUCollector(),
		memory:      NewMemoryCollector(),
		host:        NewHostCollector(),
		disk:        NewDiskCollector(cfg.IncludeDisks, cfg.ExcludeDisks),
		network:     NewNetworkCollector(cfg.IncludeNetworks, cfg.ExcludeNetworks),
		sensors:     NewSensorCollector(),
		power:       NewPowerCollector(),
		gpu:         NewGPUCollector(),
		process:     NewProcessCollector(),
		performance: NewPerformanceCollector(),
		logger:      logger,
	}
}

// Baseline primes the delta-based collectors so the first snapshot already
// reports utilization and rates instead of zeros.
func (s *System) Baseline() {
	s.logger.Info("Performing baseline collection...")

	if _, err := s.cpu.Collect(); err != nil {
		s.logger.Warn("Baseline collection had errors", "collector", s.cpu.Name(), "error", err)
	}
	if _, err := s.performance.Collect(); err != nil {
		s.logger.Warn("Baseline collection had errors", "collector", s.performance.Name(), "error", err)
	}
	if _, err := s.network.CollectStats(); err != nil {
		s.logger.Warn("Baseline collection had errors", "collector", s.network.Name(), "error", err)
	}
}

// Close releases platform handles held by the collectors.
func (s *System) Close() error {
	return s.gpu.Close()
}

// CPU returns per-core utilization, frequency and processor identity.
func (s *System) CPU() (metrics.CPUInfo, error) { return s.cpu.Collect() }

// Memory returns RAM and swap usage.
func (s *System) Memory() (metrics.MemoryInfo, error) { return s.memory.Collect() }

// Host returns OS identity, uptime and load averages.
func (s *System) Host() (metrics.HostInfo, error) { return s.host.Collect() }

// Disks returns usage of the filtered, mounted disk devices.
func (s *System) Disks() ([]metrics.DiskInfo, error) { return s.disk.Collect() }

// DiskIO returns cumulative I/O counters of the filtered disk devices.
func (s *System) DiskIO() ([]metrics.DiskIOStats, error) { return s.disk.CollectIO() }

// Networks returns the filtered interfaces with their cumulative counters.
func (s *System) Networks() ([]metrics.NetworkInfo, error) { return s.network.Collect() }

// NetworkStats returns connection counts, listening ports and per-interface rates.
func (s *System) NetworkStats() (metrics.NetworkStats, error) {
	return s.network.CollectStats()
}

// Temperatures returns raw, unclassified sensor readings.
func (s *System) Temperatures() ([]metrics.RawTemperature, error) {
	return s.sensors.Collect()
}

// Power returns AC and battery state.
func (s *System) Power() (metrics.PowerInfo, error) { return s.power.Collect() }

// GPU returns the first NVIDIA device, or nil when none is present.
func (s *System) GPU() (*metrics.GPUInfo, error) { return s.gpu.Collect() }

// Processes returns process counts by state and resource totals.
func (s *System) Processes() (metrics.ProcessSummary, error) { return s.process.Collect() }

// Performance returns the CPU time breakdown and scheduler counter rates.
func (s *System) Performance() (metrics.PerformanceMetrics, error) {
	return s.performance.Collect()
}
