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

package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Dependency injection points for testing
var (
	cpuTimes  = cpu.Times
	cpuInfo   = cpu.Info
	cpuCounts = cpu.Counts
)

// CPUCollector collects per-core utilization and processor identity.
type CPUCollector struct {
	prevStats map[string]metrics.CPUTimeStats
}

// NewCPUCollector creates a new CPU collector instance.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{
		prevStats: make(map[string]metrics.CPUTimeStats),
	}
}

// Collect gathers per-core utilization since the previous call together with
// brand, vendor, frequencies and core counts. A core seen for the first time
// only records a baseline and reports 0%.
func (c *CPUCollector) Collect() (metrics.CPUInfo, error) {
	var info metrics.CPUInfo

	times, err := cpuTimes(true)
	if err != nil {
		return info, fmt.Errorf("failed to get CPU stats: %w", err)
	}
	if len(times) == 0 {
		return info, fmt.Errorf("no CPU time stats available")
	}

	now := time.Now()
	info.Usage = make([]float64, 0, len(times))
	for i := range times {
		current := toCPUTimeStats(&times[i], now)
		prev := c.prevStats[times[i].CPU] // zero value on first sight yields 0%
		info.Usage = append(info.Usage, metrics.CalculateCPUUtilization(&prev, &current))
		c.prevStats[times[i].CPU] = current
	}

	// Identity and frequency are best effort; utilization alone is still useful.
	if infos, err := cpuInfo(); err == nil && len(infos) > 0 {
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].CPU < infos[j].CPU })
		info.Brand = infos[0].ModelName
		info.VendorID = infos[0].VendorID
		info.Frequency = make([]uint64, 0, len(infos))
		for _, in := range infos {
			info.Frequency = append(info.Frequency, uint64(in.Mhz))
		}
	}

	info.LogicalCores = len(times)
	if n, err := cpuCounts(false); err == nil {
		info.PhysicalCores = n
	}

	return info, nil
}

func toCPUTimeStats(t *cpu.TimesStat, now time.Time) metrics.CPUTimeStats {
	return metrics.CPUTimeStats{
		User:      t.User,
		System:    t.System,
		Idle:      t.Idle,
		Nice:      t.Nice,
		IOWait:    t.Iowait,
		Irq:       t.Irq,
		SoftIrq:   t.Softirq,
		Steal:     t.Steal,
		Guest:     t.Guest,
		GuestNice: t.GuestNice,
		Timestamp: now,
	}
}

// Name returns the collector name for logging purposes.
func (c *CPUCollector) Name() string {
	return "CPU"
}
