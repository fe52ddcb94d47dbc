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

// Package snapshot owns the cached host snapshot and decides when it must be
// recomputed.
package snapshot

import "github.com/phuonguno98/unomon/pkg/metrics"

// Source is the per-platform capability set the controller queries on a
// cache miss. Every method either returns a populated value or an error;
// the controller downgrades errors to the category's unavailable value.
// Methods are only ever called from one goroutine at a time.
type Source interface {
	CPU() (metrics.CPUInfo, error)
	Memory() (metrics.MemoryInfo, error)
	Host() (metrics.HostInfo, error)
	Disks() ([]metrics.DiskInfo, error)
	DiskIO() ([]metrics.DiskIOStats, error)
	Networks() ([]metrics.NetworkInfo, error)
	NetworkStats() (metrics.NetworkStats, error)
	Temperatures() ([]metrics.RawTemperature, error)
	Power() (metrics.PowerInfo, error)
	GPU() (*metrics.GPUInfo, error)
	Processes() (metrics.ProcessSummary, error)
	Performance() (metrics.PerformanceMetrics, error)
}
