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

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/mem"
)

// Dependency injection points for testing
var (
	virtualMemory = mem.VirtualMemory
	swapMemory    = mem.SwapMemory
)

// MemoryCollector collects RAM and swap counters.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector instance.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Collect gathers current memory counters in bytes. Swap failures leave the
// swap fields at zero since many hosts run without swap.
func (m *MemoryCollector) Collect() (metrics.MemoryInfo, error) {
	vmStat, err := virtualMemory()
	if err != nil {
		return metrics.MemoryInfo{}, fmt.Errorf("failed to get memory stats: %w", err)
	}

	if vmStat.Total == 0 {
		return metrics.MemoryInfo{}, fmt.Errorf("total memory is zero")
	}

	info := metrics.MemoryInfo{
		Total:     vmStat.Total,
		Used:      vmStat.Used,
		Free:      vmStat.Free,
		Available: vmStat.Available,
	}

	if swap, err := swapMemory(); err == nil {
		info.SwapTotal = swap.Total
		info.SwapUsed = swap.Used
		info.SwapFree = swap.Free
	}

	return info, nil
}

// Name returns the collector name for logging purposes.
func (m *MemoryCollector) Name() string {
	return "Memory"
}
