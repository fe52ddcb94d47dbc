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

// Package thermal classifies temperature readings and keeps a bounded
// history of them.
package thermal

import (
	"fmt"
	"strings"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// Tier thresholds in degrees Celsius. Both bounds are inclusive.
const (
	CriticalThreshold = 80.0
	WarningThreshold  = CriticalThreshold - 10.0
)

// Classify maps a reading to its severity tier. For Warning and Critical it
// also returns a human readable message; Normal returns an empty message.
func Classify(label string, value float64) (metrics.Tier, string) {
	switch {
	case value >= CriticalThreshold:
		return metrics.TierCritical, fmt.Sprintf("%s temperature is too high: %.1f°C", label, value)
	case value >= WarningThreshold:
		return metrics.TierWarning, fmt.Sprintf("%s temperature is getting high: %.1f°C", label, value)
	default:
		return metrics.TierNormal, ""
	}
}

// ClassifyAll classifies every raw reading, preserving order, and collects
// the warning messages produced along the way. Both slices are non-nil.
func ClassifyAll(raw []metrics.RawTemperature) ([]metrics.TemperatureReading, []string) {
	readings := make([]metrics.TemperatureReading, 0, len(raw))
	warnings := make([]string, 0)

	for _, r := range raw {
		tier, msg := Classify(r.Label, r.Value)
		if msg != "" {
			warnings = append(warnings, msg)
		}
		readings = append(readings, metrics.TemperatureReading{
			Label:  r.Label,
			Temp:   r.Value,
			Status: tier,
		})
	}

	return readings, warnings
}

// CPUTemperature returns the first reading whose label mentions "cpu"
// (case-insensitive), or nil when there is none.
func CPUTemperature(readings []metrics.TemperatureReading) *float64 {
	for _, r := range readings {
		if strings.Contains(strings.ToLower(r.Label), "cpu") {
			v := r.Temp
			return &v
		}
	}
	return nil
}
