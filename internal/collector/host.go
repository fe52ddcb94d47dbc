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
	"strings"

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

// Dependency injection points for testing
var (
	hostInfo = host.Info
	loadAvg  = load.Avg
)

// HostCollector collects OS identity, uptime and load averages.
type HostCollector struct{}

// NewHostCollector creates a new host collector instance.
func NewHostCollector() *HostCollector {
	return &HostCollector{}
}

// Collect gathers host information. Load average is optional because it is
// not defined on every platform.
func (h *HostCollector) Collect() (metrics.HostInfo, error) {
	info, err := hostInfo()
	if err != nil {
		return metrics.HostInfo{}, fmt.Errorf("failed to get host info: %w", err)
	}

	result := metrics.HostInfo{
		SystemName:    systemName(info),
		KernelVersion: info.KernelVersion,
		OSVersion:     info.PlatformVersion,
		HostName:      info.Hostname,
		BootTime:      info.BootTime,
		Uptime:        info.Uptime,
	}

	if avg, err := loadAvg(); err == nil {
		result.LoadAverage = metrics.LoadAverage{
			One:     avg.Load1,
			Five:    avg.Load5,
			Fifteen: avg.Load15,
		}
	}

	return result, nil
}

// systemName prefers the distribution name (e.g. "Ubuntu") over the kernel family.
func systemName(info *host.InfoStat) string {
	if info.Platform == "" {
		return info.OS
	}
	name := info.Platform
	return strings.ToUpper(name[:1]) + name[1:]
}

// Name returns the collector name for logging purposes.
func (h *HostCollector) Name() string {
	return "Host"
}
