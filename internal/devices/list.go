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

// Package devices enumerates the disks, interfaces and sensors visible to the
// agent so operators can pick include/exclude filters before serving.
package devices

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phuonguno98/unomon/internal/thermal"
	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection points for testing
var (
	diskPartitions      = disk.Partitions
	diskUsage           = disk.Usage
	netInterfaces       = net.Interfaces
	sensorsTemperatures = host.SensorsTemperatures
)

// Disk is a mounted block device.
type Disk struct {
	Name        string
	Mountpoint  string
	Filesystem  string
	Total       uint64
	UsedPercent float64
}

// Interface is a network interface with at least one address.
type Interface struct {
	Name       string
	MacAddress string
	Addresses  []string
	Up         bool
	MTU        int
}

// Sensor is a temperature sensor together with its current tier.
type Sensor struct {
	Label  string
	Temp   float64
	Status metrics.Tier
}

// ListDisks returns the mounted disk devices sorted by name. A device mounted
// more than once is listed at its first mountpoint.
func ListDisks() ([]Disk, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	disks := make([]Disk, 0, len(partitions))
	seen := make(map[string]struct{}, len(partitions))

	for _, p := range partitions {
		if _, dup := seen[p.Device]; dup {
			continue
		}
		seen[p.Device] = struct{}{}

		d := Disk{Name: p.Device, Mountpoint: p.Mountpoint, Filesystem: p.Fstype}
		// Unreadable mountpoints are still listed, with zero size.
		if usage, err := diskUsage(p.Mountpoint); err == nil {
			d.Total = usage.Total
			d.UsedPercent = usage.UsedPercent
		}
		disks = append(disks, d)
	}

	slices.SortFunc(disks, func(a, b Disk) int { return strings.Compare(a.Name, b.Name) })

	return disks, nil
}

// ListNetworkInterfaces returns the interfaces that carry an address.
func ListNetworkInterfaces() ([]Interface, error) {
	ifaces, err := netInterfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	result := make([]Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		if len(iface.Addrs) == 0 {
			continue
		}

		addrs := make([]string, len(iface.Addrs))
		for i, a := range iface.Addrs {
			addrs[i] = a.Addr
		}

		result = append(result, Interface{
			Name:       iface.Name,
			MacAddress: iface.HardwareAddr,
			Addresses:  addrs,
			Up:         slices.Contains(iface.Flags, "up"),
			MTU:        iface.MTU,
		})
	}

	slices.SortFunc(result, func(a, b Interface) int { return strings.Compare(a.Name, b.Name) })

	return result, nil
}

// ListSensors returns every populated temperature sensor, classified.
func ListSensors() ([]Sensor, error) {
	temps, err := sensorsTemperatures()
	if err != nil && len(temps) == 0 {
		return nil, fmt.Errorf("failed to read temperature sensors: %w", err)
	}

	sensors := make([]Sensor, 0, len(temps))
	for _, t := range temps {
		if t.Temperature == 0 {
			continue
		}
		tier, _ := thermal.Classify(t.SensorKey, t.Temperature)
		sensors = append(sensors, Sensor{Label: t.SensorKey, Temp: t.Temperature, Status: tier})
	}

	return sensors, nil
}

// FormatDisksTable formats disk information as a table.
func FormatDisksTable(disks []Disk) string {
	t := newTable("Available Disk Devices",
		column{"DEVICE", 30}, column{"MOUNTPOINT", 20}, column{"FILESYSTEM", 12}, column{"SIZE", 10}, column{"USED", 0})
	for _, d := range disks {
		t.row(d.Name, truncate(d.Mountpoint, 20), d.Filesystem, formatBytes(d.Total), fmt.Sprintf("%.1f%%", d.UsedPercent))
	}
	return t.String()
}

// FormatNetworksTable formats network interface information as a table.
// Additional addresses continue on their own lines.
func FormatNetworksTable(ifaces []Interface) string {
	t := newTable("Available Network Interfaces",
		column{"INTERFACE", 30}, column{"STATE", 6}, column{"MAC ADDRESS", 18}, column{"IP ADDRESSES", 0})
	for _, n := range ifaces {
		state := "down"
		if n.Up {
			state = "up"
		}
		addrs := n.Addresses
		if len(addrs) == 0 {
			addrs = []string{"N/A"}
		}
		t.row(n.Name, state, orNA(n.MacAddress), addrs[0])
		for _, a := range addrs[1:] {
			t.row("", "", "", a)
		}
	}
	return t.String()
}

// FormatSensorsTable formats temperature sensors as a table.
func FormatSensorsTable(sensors []Sensor) string {
	t := newTable("Temperature Sensors", column{"SENSOR", 40}, column{"TEMP", 10}, column{"STATUS", 0})
	for _, s := range sensors {
		t.row(s.Label, fmt.Sprintf("%.1f°C", s.Temp), string(s.Status))
	}
	return t.String()
}

const tableWidth = 80

type column struct {
	title string
	width int // zero for the last, unpadded column
}

type table struct {
	sb   strings.Builder
	cols []column
}

func newTable(title string, cols ...column) *table {
	t := &table{cols: cols}
	fmt.Fprintf(&t.sb, "\n%s:\n%s\n", title, strings.Repeat("=", tableWidth))
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	t.row(titles...)
	t.sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
	return t
}

func (t *table) row(cells ...string) {
	for i, c := range t.cols {
		if c.width == 0 {
			t.sb.WriteString(cells[i])
			continue
		}
		fmt.Fprintf(&t.sb, "%-*s ", c.width, cells[i])
	}
	t.sb.WriteString("\n")
}

func (t *table) String() string {
	return t.sb.String() + strings.Repeat("=", tableWidth) + "\n"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// formatBytes converts bytes to human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
