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

// totalTime sums every CPU time bucket that counts toward wall time.
// Guest and GuestNice are already included in User and Nice.
func totalTime(s *CPUTimeStats) float64 {
	return s.User + s.System + s.Idle + s.Nice + s.IOWait + s.Irq + s.SoftIrq + s.Steal
}

// CalculateCPUUtilization calculates CPU utilization percentage from two CPU time snapshots.
// Formula: 100 * (1 - ΔIdle / ΔTotal)
func CalculateCPUUtilization(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return 0.0
	}

	deltaTotal := totalTime(current) - totalTime(prev)
	deltaIdle := current.Idle - prev.Idle

	if deltaTotal <= 0 {
		return 0.0
	}

	return 100.0 * (1.0 - deltaIdle/deltaTotal)
}

// CalculateCPUBreakdown splits the interval between two CPU time snapshots
// into per-bucket percentages. Counters are left at zero.
func CalculateCPUBreakdown(prev, current *CPUTimeStats) PerformanceMetrics {
	var pm PerformanceMetrics
	if prev.Timestamp.IsZero() {
		return pm
	}

	deltaTotal := totalTime(current) - totalTime(prev)
	if deltaTotal <= 0 {
		return pm
	}

	pct := func(cur, old float64) float64 {
		d := cur - old
		if d < 0 {
			return 0.0
		}
		return 100.0 * d / deltaTotal
	}

	pm.UserPercentage = pct(current.User, prev.User)
	pm.SystemPercentage = pct(current.System, prev.System)
	pm.NicePercentage = pct(current.Nice, prev.Nice)
	pm.IOWaitPercentage = pct(current.IOWait, prev.IOWait)
	pm.IRQPercentage = pct(current.Irq, prev.Irq)
	pm.SoftIRQPercentage = pct(current.SoftIrq, prev.SoftIrq)
	pm.StealPercentage = pct(current.Steal, prev.Steal)

	return pm
}

// CalculateRate returns the per-second rate of a monotonically increasing counter.
// A counter that went backwards (interface reset) yields 0.
func CalculateRate(prev, current uint64, seconds float64) float64 {
	if seconds <= 0 || current < prev {
		return 0.0
	}
	return float64(current-prev) / seconds
}

// CalculateNetworkRates derives receive/transmit byte and packet rates from two samples.
func CalculateNetworkRates(prev, current NetworkIOStats) (rxBytes, txBytes, rxPackets, txPackets float64) {
	if prev.Timestamp.IsZero() {
		return 0, 0, 0, 0
	}

	deltaTime := current.Timestamp.Sub(prev.Timestamp).Seconds()
	if deltaTime <= 0 {
		return 0, 0, 0, 0
	}

	rxBytes = CalculateRate(prev.BytesRecv, current.BytesRecv, deltaTime)
	txBytes = CalculateRate(prev.BytesSent, current.BytesSent, deltaTime)
	rxPackets = CalculateRate(prev.PacketsRecv, current.PacketsRecv, deltaTime)
	txPackets = CalculateRate(prev.PacketsSent, current.PacketsSent, deltaTime)
	return rxBytes, txBytes, rxPackets, txPackets
}

// Percentage returns part/total as a percentage, or 0 when total is 0.
func Percentage(part, total uint64) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}
