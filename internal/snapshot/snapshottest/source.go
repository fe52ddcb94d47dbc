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

// Package snapshottest provides a scriptable snapshot.Source for tests.
package snapshottest

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// ErrUnavailable is returned by categories listed in Source.Fail.
var ErrUnavailable = errors.New("category unavailable")

// Source is a canned metric source. Categories named in Fail return
// ErrUnavailable. Delay is slept inside every Temperatures call, which makes
// overlapping recomputations observable through MaxInFlight.
type Source struct {
	CPUInfo  metrics.CPUInfo
	MemInfo  metrics.MemoryInfo
	HostInfo metrics.HostInfo
	DiskList []metrics.DiskInfo
	Temps    []metrics.RawTemperature
	GPUInfo  *metrics.GPUInfo
	Fail     map[string]bool
	Delay    time.Duration

	mu          sync.Mutex
	calls       int
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// New returns a Source populated with plausible values.
func New() *Source {
	return &Source{
		CPUInfo: metrics.CPUInfo{
			Usage:         []float64{12.5, 30},
			Frequency:     []uint64{3600, 3600},
			Brand:         "Test CPU",
			VendorID:      "GenuineTest",
			LogicalCores:  2,
			PhysicalCores: 1,
		},
		MemInfo: metrics.MemoryInfo{Total: 1000, Used: 250, Free: 750, Available: 700},
		HostInfo: metrics.HostInfo{
			SystemName: "linux", HostName: "testhost",
			LoadAverage: metrics.LoadAverage{One: 0.5, Five: 0.25, Fifteen: 0.1},
		},
		DiskList: []metrics.DiskInfo{{Name: "/dev/sda1", MountPoint: "/", TotalSpace: 100, AvailableSpace: 40}},
		Temps: []metrics.RawTemperature{
			{Label: "CPU Package", Value: 55},
			{Label: "nvme", Value: 75},
		},
		Fail: map[string]bool{},
	}
}

// SetTemps replaces the temperatures returned by later calls.
func (s *Source) SetTemps(temps []metrics.RawTemperature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Temps = temps
}

// Calls returns how many times the temperature category was queried, which
// equals the number of recomputations.
func (s *Source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MaxInFlight returns the highest number of concurrent Temperatures calls seen.
func (s *Source) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}

func (s *Source) failed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Fail[name]
}

func (s *Source) CPU() (metrics.CPUInfo, error) {
	if s.failed("cpu") {
		return metrics.CPUInfo{}, ErrUnavailable
	}
	return s.CPUInfo, nil
}

func (s *Source) Memory() (metrics.MemoryInfo, error) {
	if s.failed("memory") {
		return metrics.MemoryInfo{}, ErrUnavailable
	}
	return s.MemInfo, nil
}

func (s *Source) Host() (metrics.HostInfo, error) {
	if s.failed("host") {
		return metrics.HostInfo{}, ErrUnavailable
	}
	return s.HostInfo, nil
}

func (s *Source) Disks() ([]metrics.DiskInfo, error) {
	if s.failed("disks") {
		return nil, ErrUnavailable
	}
	return s.DiskList, nil
}

func (s *Source) DiskIO() ([]metrics.DiskIOStats, error) {
	if s.failed("disk_io") {
		return nil, ErrUnavailable
	}
	return []metrics.DiskIOStats{{Device: "sda", Reads: 10, Writes: 5}}, nil
}

func (s *Source) Networks() ([]metrics.NetworkInfo, error) {
	if s.failed("networks") {
		return nil, ErrUnavailable
	}
	return []metrics.NetworkInfo{
		{Interface: "eth0", ReceivedBytes: 100, TransmittedBytes: 50, IPAddresses: []string{"10.0.0.2/24"}},
	}, nil
}

func (s *Source) NetworkStats() (metrics.NetworkStats, error) {
	if s.failed("network_stats") {
		return metrics.NetworkStats{}, ErrUnavailable
	}
	return metrics.NetworkStats{TCPConnections: 3, TCPListenPorts: []uint16{22}}, nil
}

func (s *Source) Temperatures() ([]metrics.RawTemperature, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls++
	temps := s.Temps
	fail := s.Fail["temperatures"]
	s.mu.Unlock()

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	if fail {
		return nil, ErrUnavailable
	}
	return temps, nil
}

func (s *Source) Power() (metrics.PowerInfo, error) {
	if s.failed("power") {
		return metrics.PowerInfo{}, ErrUnavailable
	}
	return metrics.PowerInfo{ACPowered: true}, nil
}

func (s *Source) GPU() (*metrics.GPUInfo, error) {
	if s.failed("gpu") {
		return nil, ErrUnavailable
	}
	return s.GPUInfo, nil
}

func (s *Source) Processes() (metrics.ProcessSummary, error) {
	if s.failed("processes") {
		return metrics.ProcessSummary{}, ErrUnavailable
	}
	return metrics.ProcessSummary{ProcessCount: 42, ThreadCount: 100, RunningCount: 2}, nil
}

func (s *Source) Performance() (metrics.PerformanceMetrics, error) {
	if s.failed("performance") {
		return metrics.PerformanceMetrics{}, ErrUnavailable
	}
	return metrics.PerformanceMetrics{UserPercentage: 10, SystemPercentage: 5}, nil
}
