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
	"slices"
	"sort"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection points for testing
var (
	netIOCounters  = net.IOCounters
	netInterfaces  = net.Interfaces
	netConnections = net.Connections
)

// NetworkCollector collects interface counters, socket summaries and
// per-interface rates.
type NetworkCollector struct {
	prevStats         map[string]metrics.NetworkIOStats
	includeInterfaces []string // Interfaces to monitor (empty = all)
	excludeInterfaces []string // Interfaces to exclude
}

// NewNetworkCollector creates a new network collector instance.
// includeInterfaces: list of interface names to monitor (empty = all available)
// excludeInterfaces: list of interface names to exclude
func NewNetworkCollector(includeInterfaces, excludeInterfaces []string) *NetworkCollector {
	return &NetworkCollector{
		prevStats:         make(map[string]metrics.NetworkIOStats),
		includeInterfaces: includeInterfaces,
		excludeInterfaces: excludeInterfaces,
	}
}

// Collect returns cumulative counters, MAC and addresses for every monitored
// interface, sorted by name.
func (n *NetworkCollector) Collect() ([]metrics.NetworkInfo, error) {
	ioCounters, err := netIOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network I/O counters: %w", err)
	}

	// Addresses are optional decoration on top of the counters.
	addrs := make(map[string]net.InterfaceStat)
	if ifaces, err := netInterfaces(); err == nil {
		for _, iface := range ifaces {
			addrs[iface.Name] = iface
		}
	}

	result := make([]metrics.NetworkInfo, 0, len(ioCounters))
	for _, counter := range ioCounters {
		if !n.shouldMonitor(counter.Name) {
			continue
		}

		info := metrics.NetworkInfo{
			Interface:          counter.Name,
			ReceivedBytes:      counter.BytesRecv,
			TransmittedBytes:   counter.BytesSent,
			ReceivedPackets:    counter.PacketsRecv,
			TransmittedPackets: counter.PacketsSent,
			IPAddresses:        []string{},
		}
		if iface, ok := addrs[counter.Name]; ok {
			if iface.HardwareAddr != "" {
				mac := iface.HardwareAddr
				info.MacAddress = &mac
			}
			for _, a := range iface.Addrs {
				info.IPAddresses = append(info.IPAddresses, a.Addr)
			}
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Interface < result[j].Interface
	})

	return result, nil
}

// CollectStats returns socket counts, listening ports and per-interface error
// counters with rates measured against the previous call. Socket enumeration
// failures leave the socket fields empty but do not fail the call.
func (n *NetworkCollector) CollectStats() (metrics.NetworkStats, error) {
	stats := metrics.NetworkStats{
		TCPListenPorts: []uint16{},
		UDPListenPorts: []uint16{},
	}

	ifaceStats, err := n.interfaceStats(time.Now())
	if err != nil {
		return stats, err
	}
	stats.InterfaceStats = ifaceStats

	if tcp, err := netConnections("tcp"); err == nil {
		stats.TCPConnections = len(tcp)
		for _, conn := range tcp {
			if conn.Status == "LISTEN" {
				stats.TCPListenPorts = appendPort(stats.TCPListenPorts, conn.Laddr.Port)
			}
		}
	}

	if udp, err := netConnections("udp"); err == nil {
		stats.UDPConnections = len(udp)
		for _, conn := range udp {
			stats.UDPListenPorts = appendPort(stats.UDPListenPorts, conn.Laddr.Port)
		}
	}

	slices.Sort(stats.TCPListenPorts)
	slices.Sort(stats.UDPListenPorts)

	return stats, nil
}

func (n *NetworkCollector) interfaceStats(now time.Time) ([]metrics.InterfaceStats, error) {
	ioCounters, err := netIOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network I/O counters: %w", err)
	}

	result := make([]metrics.InterfaceStats, 0, len(ioCounters))
	for _, counter := range ioCounters {
		interfaceName := counter.Name
		if !n.shouldMonitor(interfaceName) {
			continue
		}

		currentStats := metrics.NetworkIOStats{
			BytesSent:   counter.BytesSent,
			BytesRecv:   counter.BytesRecv,
			PacketsSent: counter.PacketsSent,
			PacketsRecv: counter.PacketsRecv,
			Timestamp:   now,
		}

		// Interfaces without a previous sample report zero rates.
		rxB, txB, rxP, txP := metrics.CalculateNetworkRates(n.prevStats[interfaceName], currentStats)
		n.prevStats[interfaceName] = currentStats

		result = append(result, metrics.InterfaceStats{
			Name:         interfaceName,
			RxErrors:     counter.Errin,
			TxErrors:     counter.Errout,
			RxDropped:    counter.Dropin,
			TxDropped:    counter.Dropout,
			RxBytesSec:   rxB,
			TxBytesSec:   txB,
			RxPacketsSec: rxP,
			TxPacketsSec: txP,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func appendPort(ports []uint16, port uint32) []uint16 {
	p := uint16(port)
	if port == 0 || slices.Contains(ports, p) {
		return ports
	}
	return append(ports, p)
}

// shouldMonitor checks if an interface should be monitored based on include/exclude filters.
func (n *NetworkCollector) shouldMonitor(interfaceName string) bool {
	return deviceFilter{include: n.includeInterfaces, exclude: n.excludeInterfaces}.allows(interfaceName)
}

// Name returns the collector name for logging purposes.
func (n *NetworkCollector) Name() string {
	return "Network"
}
