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
	"github.com/shirou/gopsutil/v3/process"
)

// Dependency injection points for testing
var listProcesses = func() ([]processHandle, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}
	handles := make([]processHandle, len(procs))
	for i, p := range procs {
		handles[i] = p
	}
	return handles, nil
}

// processHandle is the subset of *process.Process the collector reads.
type processHandle interface {
	Status() ([]string, error)
	CPUPercent() (float64, error)
	MemoryInfo() (*process.MemoryInfoStat, error)
	NumThreads() (int32, error)
}

// ProcessCollector aggregates process states and resource usage.
type ProcessCollector struct{}

// NewProcessCollector creates a new process collector instance.
func NewProcessCollector() *ProcessCollector {
	return &ProcessCollector{}
}

// Collect walks the process table. Processes that exit or deny access while
// being inspected simply contribute nothing for the unreadable fields.
func (p *ProcessCollector) Collect() (metrics.ProcessSummary, error) {
	procs, err := listProcesses()
	if err != nil {
		return metrics.ProcessSummary{}, fmt.Errorf("failed to list processes: %w", err)
	}

	summary := metrics.ProcessSummary{ProcessCount: len(procs)}
	for _, proc := range procs {
		if status, err := proc.Status(); err == nil && len(status) > 0 {
			switch status[0] {
			case process.Running:
				summary.RunningCount++
			case process.Sleep, process.Idle:
				summary.Stats.SleepingCount++
			case process.Zombie:
				summary.Stats.ZombieCount++
			case process.Stop, process.Blocked, process.Wait, process.Lock:
				summary.Stats.BlockedCount++
			}
		}

		if threads, err := proc.NumThreads(); err == nil {
			summary.ThreadCount += int(threads)
		}
		if pct, err := proc.CPUPercent(); err == nil {
			summary.Stats.TotalCPUUsage += pct
		}
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			summary.Stats.TotalMemoryUsage += mem.RSS
		}
	}

	return summary, nil
}

// Name returns the collector name for logging purposes.
func (p *ProcessCollector) Name() string {
	return "Process"
}
