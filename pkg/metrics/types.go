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

package metrics

import "time"

// Snapshot is one fully assembled set of host metrics at a point in time.
// A Snapshot handed out by the cache is shared between requests and must be
// treated as read-only.
type Snapshot struct {
	// CPU
	CPUUsage         []float64   `json:"cpu_usage"`
	CPUTemp          *float64    `json:"cpu_temp"`
	CPUBrand         string      `json:"cpu_brand"`
	CPUFrequency     []uint64    `json:"cpu_frequency"`
	CPUCores         int         `json:"cpu_cores"`
	CPUPhysicalCores int         `json:"cpu_physical_cores"`
	CPUVendorID      string      `json:"cpu_vendor_id"`
	CPULoadAvg       LoadAverage `json:"cpu_load_avg"`

	// GPU (nil when no supported GPU is present)
	GPUInfo *GPUInfo `json:"gpu_info"`

	// Memory
	MemoryTotal     uint64  `json:"memory_total"`
	MemoryUsed      uint64  `json:"memory_used"`
	MemoryFree      uint64  `json:"memory_free"`
	MemoryAvailable uint64  `json:"memory_available"`
	MemoryUsage     float64 `json:"memory_usage"`
	SwapTotal       uint64  `json:"swap_total"`
	SwapUsed        uint64  `json:"swap_used"`
	SwapFree        uint64  `json:"swap_free"`
	SwapUsage       float64 `json:"swap_usage"`

	// Disk
	Disks          []DiskInfo    `json:"disks"`
	TotalDiskSpace uint64        `json:"total_disk_space"`
	TotalDiskUsed  uint64        `json:"total_disk_used"`
	TotalDiskFree  uint64        `json:"total_disk_free"`
	DiskIOStats    []DiskIOStats `json:"disk_io_stats"`

	// Host
	SystemName    *string     `json:"system_name"`
	KernelVersion *string     `json:"kernel_version"`
	OSVersion     *string     `json:"os_version"`
	HostName      *string     `json:"host_name"`
	BootTime      uint64      `json:"boot_time"`
	Uptime        uint64      `json:"uptime"`
	LoadAverage   LoadAverage `json:"load_average"`

	// Processes
	ProcessCount        int          `json:"process_count"`
	ThreadCount         int          `json:"thread_count"`
	RunningProcessCount int          `json:"running_process_count"`
	ProcessStats        ProcessStats `json:"process_stats"`

	// Temperature
	Temperatures []TemperatureReading `json:"temperatures"`
	TempWarnings []string             `json:"temp_warnings"`
	Timestamp    time.Time            `json:"timestamp"`

	// Network
	Networks     []NetworkInfo `json:"networks"`
	TotalRxBytes uint64        `json:"total_rx_bytes"`
	TotalTxBytes uint64        `json:"total_tx_bytes"`
	NetworkStats NetworkStats  `json:"network_stats"`

	PowerInfo          PowerInfo          `json:"power_info"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
}

// LoadAverage holds the 1, 5 and 15 minute load averages.
type LoadAverage struct {
	One     float64 `json:"one"`
	Five    float64 `json:"five"`
	Fifteen float64 `json:"fifteen"`
}

// CPUInfo is the static and per-core view of the processor.
type CPUInfo struct {
	Usage         []float64 // Per logical core utilization percentage
	Frequency     []uint64  // Per logical core frequency in MHz
	Brand         string
	VendorID      string
	LogicalCores  int
	PhysicalCores int
}

// MemoryInfo holds RAM and swap counters in bytes.
type MemoryInfo struct {
	Total     uint64
	Used      uint64
	Free      uint64
	Available uint64
	SwapTotal uint64
	SwapUsed  uint64
	SwapFree  uint64
}

// HostInfo describes the operating system and its uptime.
type HostInfo struct {
	SystemName    string
	KernelVersion string
	OSVersion     string
	HostName      string
	BootTime      uint64 // Unix seconds
	Uptime        uint64 // Seconds
	LoadAverage   LoadAverage
}

// DiskInfo is the capacity of a single mounted filesystem.
type DiskInfo struct {
	Name            string  `json:"name"`
	MountPoint      string  `json:"mount_point"`
	TotalSpace      uint64  `json:"total_space"`
	AvailableSpace  uint64  `json:"available_space"`
	UsagePercentage float64 `json:"usage_percentage"`
}

// DiskIOStats holds raw cumulative I/O counters for one block device.
type DiskIOStats struct {
	Device       string `json:"device"`
	Reads        uint64 `json:"reads"`
	Writes       uint64 `json:"writes"`
	ReadBytes    uint64 `json:"read_bytes"`
	WriteBytes   uint64 `json:"write_bytes"`
	ReadTime     uint64 `json:"read_time"`  // Milliseconds
	WriteTime    uint64 `json:"write_time"` // Milliseconds
	IOInProgress uint64 `json:"io_in_progress"`
}

// NetworkInfo holds cumulative counters and addressing for one interface.
type NetworkInfo struct {
	Interface          string   `json:"interface"`
	ReceivedBytes      uint64   `json:"received_bytes"`
	TransmittedBytes   uint64   `json:"transmitted_bytes"`
	ReceivedPackets    uint64   `json:"received_packets"`
	TransmittedPackets uint64   `json:"transmitted_packets"`
	MacAddress         *string  `json:"mac_address"`
	IPAddresses        []string `json:"ip_addresses"`
}

// NetworkStats summarizes sockets and per-interface error and rate figures.
type NetworkStats struct {
	TCPConnections int              `json:"tcp_connections"`
	UDPConnections int              `json:"udp_connections"`
	TCPListenPorts []uint16         `json:"tcp_listen_ports"`
	UDPListenPorts []uint16         `json:"udp_listen_ports"`
	InterfaceStats []InterfaceStats `json:"interface_stats"`
}

// InterfaceStats holds error counters and rates derived from the previous sample.
type InterfaceStats struct {
	Name         string  `json:"name"`
	RxErrors     uint64  `json:"rx_errors"`
	TxErrors     uint64  `json:"tx_errors"`
	RxDropped    uint64  `json:"rx_dropped"`
	TxDropped    uint64  `json:"tx_dropped"`
	RxBytesSec   float64 `json:"rx_bytes_sec"`
	TxBytesSec   float64 `json:"tx_bytes_sec"`
	RxPacketsSec float64 `json:"rx_packets_sec"`
	TxPacketsSec float64 `json:"tx_packets_sec"`
}

// GPUInfo describes the primary GPU.
type GPUInfo struct {
	Vendor      string   `json:"vendor"`
	Model       string   `json:"model"`
	Usage       float64  `json:"usage"`
	MemoryTotal uint64   `json:"memory_total"`
	MemoryUsed  uint64   `json:"memory_used"`
	Temperature *float64 `json:"temperature"`
	PowerUsage  *float64 `json:"power_usage"` // Watts
}

// ProcessStats aggregates state counts and resource usage over all processes.
type ProcessStats struct {
	ZombieCount      int     `json:"zombie_count"`
	SleepingCount    int     `json:"sleeping_count"`
	BlockedCount     int     `json:"blocked_count"`
	TotalCPUUsage    float64 `json:"total_cpu_usage"`
	TotalMemoryUsage uint64  `json:"total_memory_usage"` // Resident bytes
}

// ProcessSummary is what the process collector reports.
type ProcessSummary struct {
	ProcessCount int
	ThreadCount  int
	RunningCount int
	Stats        ProcessStats
}

// PowerInfo reports AC and battery state.
type PowerInfo struct {
	ACPowered            bool     `json:"ac_powered"`
	BatteryPresent       bool     `json:"battery_present"`
	BatteryPercentage    *float64 `json:"battery_percentage"`
	BatteryTimeRemaining *uint64  `json:"battery_time_remaining"` // Seconds
	PowerConsumption     *float64 `json:"power_consumption"`      // Watts
}

// PerformanceMetrics is the CPU time breakdown since the previous sample plus
// scheduler counters.
type PerformanceMetrics struct {
	IOWaitPercentage  float64 `json:"iowait_percentage"`
	StealPercentage   float64 `json:"steal_percentage"`
	SystemPercentage  float64 `json:"system_percentage"`
	UserPercentage    float64 `json:"user_percentage"`
	NicePercentage    float64 `json:"nice_percentage"`
	IRQPercentage     float64 `json:"irq_percentage"`
	SoftIRQPercentage float64 `json:"softirq_percentage"`
	CPUQueueLength    uint64  `json:"cpu_queue_length"`
	ContextSwitches   float64 `json:"context_switches"` // per second
	Interrupts        float64 `json:"interrupts"`       // per second
}

// RawTemperature is an unclassified sensor reading in degrees Celsius.
type RawTemperature struct {
	Label string
	Value float64
}

// TemperatureReading is a sensor reading with its severity tier.
type TemperatureReading struct {
	Label  string  `json:"label"`
	Temp   float64 `json:"temp"`
	Status Tier    `json:"status"`
}

// Tier is a temperature severity classification.
type Tier string

// Temperature tiers.
const (
	TierNormal   Tier = "Normal"
	TierWarning  Tier = "Warning"
	TierCritical Tier = "Critical"
)

// HistoryEntry is one timestamped batch of classified readings.
type HistoryEntry struct {
	Timestamp time.Time            `json:"timestamp"`
	Readings  []TemperatureReading `json:"readings"`
}

// CPUTimeStats represents CPU time statistics for delta calculations.
type CPUTimeStats struct {
	User      float64
	System    float64
	Idle      float64
	Nice      float64
	IOWait    float64
	Irq       float64
	SoftIrq   float64
	Steal     float64
	Guest     float64
	GuestNice float64
	Timestamp time.Time
}

// NetworkIOStats represents network I/O counters for delta calculations.
type NetworkIOStats struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	Timestamp   time.Time
}
