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

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/disk"
)

// Dependency injection points for testing
var (
	diskPartitions = disk.Partitions
	diskUsage      = disk.Usage
	diskIOCounters = disk.IOCounters
)

// DiskCollector collects filesystem capacity and block device I/O counters.
type DiskCollector struct {
	filter deviceFilter
}

// normalizeDeviceName strips /dev/ prefix from device names for consistent comparison.
// This allows users to specify devices as shown in list-devices (/dev/sdd)
// while internally matching against disk.IOCounters() format (sdd).
func normalizeDeviceName(name string) string {
	if len(name) >= 5 && name[:5] == "/dev/" {
		return name[5:]
	}
	return name
}

// normalizeDeviceList normalizes all device names in a list.
func normalizeDeviceList(devices []string) []string {
	normalized := make([]string, len(devices))
	for i, device := range devices {
		normalized[i] = normalizeDeviceName(device)
	}
	return normalized
}

// NewDiskCollector creates a new disk collector instance.
// includeDevices: list of device names to monitor (empty = all available)
// excludeDevices: list of device names to exclude
// Device names can be specified with or without /dev/ prefix (e.g., "sdd" or "/dev/sdd")
func NewDiskCollector(includeDevices, excludeDevices []string) *DiskCollector {
	return &DiskCollector{
		filter: deviceFilter{
			include: normalizeDeviceList(includeDevices),
			exclude: normalizeDeviceList(excludeDevices),
		},
	}
}

// Collect returns capacity for every physical mounted filesystem, one entry
// per device, sorted by device name.
func (d *DiskCollector) Collect() ([]metrics.DiskInfo, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	disks := make([]metrics.DiskInfo, 0, len(partitions))
	seen := make(map[string]bool)

	for _, partition := range partitions {
		if seen[partition.Device] || !d.shouldMonitor(normalizeDeviceName(partition.Device)) {
			continue
		}
		seen[partition.Device] = true

		usage, err := diskUsage(partition.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}

		disks = append(disks, metrics.DiskInfo{
			Name:            partition.Device,
			MountPoint:      partition.Mountpoint,
			TotalSpace:      usage.Total,
			AvailableSpace:  usage.Free,
			UsagePercentage: metrics.Percentage(usage.Total-usage.Free, usage.Total),
		})
	}

	sort.Slice(disks, func(i, j int) bool {
		return disks[i].Name < disks[j].Name
	})

	return disks, nil
}

// CollectIO returns raw cumulative I/O counters per block device, sorted by name.
func (d *DiskCollector) CollectIO() ([]metrics.DiskIOStats, error) {
	ioCounters, err := diskIOCounters()
	if err != nil {
		return nil, fmt.Errorf("failed to get disk I/O counters: %w", err)
	}

	result := make([]metrics.DiskIOStats, 0, len(ioCounters))
	for deviceName := range ioCounters {
		counter := ioCounters[deviceName]

		if !d.shouldMonitor(deviceName) {
			continue
		}

		result = append(result, metrics.DiskIOStats{
			Device:       deviceName,
			Reads:        counter.ReadCount,
			Writes:       counter.WriteCount,
			ReadBytes:    counter.ReadBytes,
			WriteBytes:   counter.WriteBytes,
			ReadTime:     counter.ReadTime,
			WriteTime:    counter.WriteTime,
			IOInProgress: counter.IopsInProgress,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Device < result[j].Device
	})

	return result, nil
}

// shouldMonitor checks if a device should be monitored based on include/exclude filters.
func (d *DiskCollector) shouldMonitor(deviceName string) bool {
	return d.filter.allows(deviceName)
}

// Name returns the collector name for logging purposes.
func (d *DiskCollector) Name() string {
	return "Disk"
}
