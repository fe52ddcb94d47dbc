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

package devices

import (
	"errors"
	"strings"
	"testing"

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"
)

func TestListDisks(t *testing.T) {
	origPartitions := diskPartitions
	origUsage := diskUsage
	defer func() {
		diskPartitions = origPartitions
		diskUsage = origUsage
	}()

	twoDisks := func(bool) ([]disk.PartitionStat, error) {
		return []disk.PartitionStat{
			{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"},
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		}, nil
	}
	okUsage := func(string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 1000, UsedPercent: 25}, nil
	}

	tests := []struct {
		name           string
		mockPartitions func(bool) ([]disk.PartitionStat, error)
		mockUsage      func(string) (*disk.UsageStat, error)
		wantNames      []string
		wantTotal      uint64
		wantErr        bool
	}{
		{
			name:           "Sorted by device",
			mockPartitions: twoDisks,
			mockUsage:      okUsage,
			wantNames:      []string{"/dev/sda1", "/dev/sdb1"},
			wantTotal:      1000,
		},
		{
			name: "Partitions error",
			mockPartitions: func(bool) ([]disk.PartitionStat, error) {
				return nil, errors.New("start failed")
			},
			wantErr: true,
		},
		{
			name: "Usage error keeps device with zero size",
			mockPartitions: func(bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{{Device: "/dev/sda1", Mountpoint: "/"}}, nil
			},
			mockUsage: func(string) (*disk.UsageStat, error) {
				return nil, errors.New("usage failed")
			},
			wantNames: []string{"/dev/sda1"},
			wantTotal: 0,
		},
		{
			name: "Duplicate devices",
			mockPartitions: func(bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{
					{Device: "/dev/sda1", Mountpoint: "/"},
					{Device: "/dev/sda1", Mountpoint: "/mnt"},
				}, nil
			},
			mockUsage: okUsage,
			wantNames: []string{"/dev/sda1"},
			wantTotal: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diskPartitions = tt.mockPartitions
			diskUsage = tt.mockUsage

			got, err := ListDisks()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListDisks() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("ListDisks() count = %d, want %d", len(got), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if got[i].Name != name {
					t.Errorf("ListDisks()[%d].Name = %q, want %q", i, got[i].Name, name)
				}
				if got[i].Total != tt.wantTotal {
					t.Errorf("ListDisks()[%d].Total = %d, want %d", i, got[i].Total, tt.wantTotal)
				}
			}
		})
	}
}

func TestListNetworkInterfaces(t *testing.T) {
	origInterfaces := netInterfaces
	defer func() { netInterfaces = origInterfaces }()

	netInterfaces = func() (net.InterfaceStatList, error) {
		return net.InterfaceStatList{
			{Name: "eth1", Addrs: []net.InterfaceAddr{{Addr: "10.0.0.1/8"}}, Flags: []string{"broadcast"}},
			{Name: "docker0", Addrs: nil},
			{Name: "eth0", Addrs: []net.InterfaceAddr{{Addr: "192.168.1.1/24"}}, Flags: []string{"up", "broadcast"}, MTU: 1500},
		}, nil
	}

	got, err := ListNetworkInterfaces()
	if err != nil {
		t.Fatalf("ListNetworkInterfaces() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListNetworkInterfaces() count = %d, want 2", len(got))
	}
	if got[0].Name != "eth0" || !got[0].Up || got[0].MTU != 1500 {
		t.Errorf("first interface = %+v, want eth0 up with MTU 1500", got[0])
	}
	if got[1].Up {
		t.Errorf("eth1 reported up without the up flag")
	}

	netInterfaces = func() (net.InterfaceStatList, error) {
		return nil, errors.New("net failed")
	}
	if _, err := ListNetworkInterfaces(); err == nil {
		t.Error("ListNetworkInterfaces() expected error")
	}
}

func TestListSensors(t *testing.T) {
	orig := sensorsTemperatures
	defer func() { sensorsTemperatures = orig }()

	sensorsTemperatures = func() ([]host.TemperatureStat, error) {
		return []host.TemperatureStat{
			{SensorKey: "coretemp_package_id_0", Temperature: 45},
			{SensorKey: "unpopulated", Temperature: 0},
			{SensorKey: "nvme_composite", Temperature: 71},
			{SensorKey: "gpu_edge", Temperature: 85},
		}, errors.New("one sensor unreadable")
	}

	got, err := ListSensors()
	if err != nil {
		t.Fatalf("ListSensors() error = %v", err)
	}

	want := []metrics.Tier{metrics.TierNormal, metrics.TierWarning, metrics.TierCritical}
	if len(got) != len(want) {
		t.Fatalf("ListSensors() count = %d, want %d", len(got), len(want))
	}
	for i, tier := range want {
		if got[i].Status != tier {
			t.Errorf("ListSensors()[%d].Status = %s, want %s", i, got[i].Status, tier)
		}
	}

	sensorsTemperatures = func() ([]host.TemperatureStat, error) {
		return nil, errors.New("no sensors")
	}
	if _, err := ListSensors(); err == nil {
		t.Error("ListSensors() expected error when nothing is readable")
	}
}

func TestFormatDisksTable(t *testing.T) {
	out := FormatDisksTable([]Disk{
		{Name: "disk1", Mountpoint: "/mnt/data", Filesystem: "ext4", Total: 1024 * 1024 * 1024 * 100, UsedPercent: 42.5},
		{Name: "disk2", Mountpoint: "/very/long/path/name/that/exceeds/limit", Filesystem: "ntfs"},
	})

	for _, want := range []string{"disk1", "100.0 GB", "42.5%", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDisksTable() missing %q", want)
		}
	}
}

func TestFormatNetworksTable(t *testing.T) {
	out := FormatNetworksTable([]Interface{
		{Name: "eth0", MacAddress: "AA:BB:CC:DD:EE:FF", Addresses: []string{"192.168.1.1", "fe80::1"}, Up: true},
		{Name: "lo"},
	})

	for _, want := range []string{"eth0", "AA:BB:CC:DD:EE:FF", "192.168.1.1", "fe80::1", "N/A", "down"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatNetworksTable() missing %q", want)
		}
	}
}

func TestFormatSensorsTable(t *testing.T) {
	out := FormatSensorsTable([]Sensor{{Label: "cpu_package", Temp: 81.24, Status: metrics.TierCritical}})

	for _, want := range []string{"cpu_package", "81.2°C", "Critical"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatSensorsTable() missing %q", want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{1024 * 1024 * 1024 * 5, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.input); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Short", 10); got != "Short" {
		t.Errorf("truncate(Short) = %q", got)
	}
	if got := truncate("TooLongString", 10); got != "TooLong..." {
		t.Errorf("truncate(TooLongString) = %q", got)
	}
}
