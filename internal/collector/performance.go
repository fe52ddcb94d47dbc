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
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/load"
)

// Dependency injection points for testing
var (
	loadMisc       = load.Misc
	interruptCount = readInterrupts
	perfNow        = time.Now
)

// PerformanceCollector reports the aggregate CPU time breakdown since the
// previous call together with scheduler counter rates.
type PerformanceCollector struct {
	prevStats metrics.CPUTimeStats

	// Previous cumulative counters; zero means no usable sample.
	prevCtxt uint64
	prevIntr uint64
}

// NewPerformanceCollector creates a new performance collector instance.
func NewPerformanceCollector() *PerformanceCollector {
	return &PerformanceCollector{}
}

// Collect gathers the breakdown. The first call establishes the baseline and
// reports zero percentages.
func (p *PerformanceCollector) Collect() (metrics.PerformanceMetrics, error) {
	times, err := cpuTimes(false)
	if err != nil {
		return metrics.PerformanceMetrics{}, fmt.Errorf("failed to get CPU stats: %w", err)
	}
	if len(times) == 0 {
		return metrics.PerformanceMetrics{}, fmt.Errorf("no CPU time stats available")
	}

	current := toCPUTimeStats(&times[0], perfNow())
	pm := metrics.CalculateCPUBreakdown(&p.prevStats, &current)

	var seconds float64
	if !p.prevStats.Timestamp.IsZero() {
		seconds = current.Timestamp.Sub(p.prevStats.Timestamp).Seconds()
	}
	p.prevStats = current

	// Scheduler counters are only exposed on some platforms.
	var ctxt uint64
	if misc, err := loadMisc(); err == nil {
		pm.CPUQueueLength = nonNegative(misc.ProcsRunning)
		ctxt = nonNegative(misc.Ctxt)
	}
	intr := interruptCount()

	pm.ContextSwitches = counterRate(p.prevCtxt, ctxt, seconds)
	pm.Interrupts = counterRate(p.prevIntr, intr, seconds)
	p.prevCtxt, p.prevIntr = ctxt, intr

	return pm, nil
}

// counterRate is zero unless both samples carry the counter.
func counterRate(prev, current uint64, seconds float64) float64 {
	if prev == 0 || current == 0 {
		return 0
	}
	return metrics.CalculateRate(prev, current, seconds)
}

func nonNegative(v int) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// Name returns the collector name for logging purposes.
func (p *PerformanceCollector) Name() string {
	return "Performance"
}
