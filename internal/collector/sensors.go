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

	"github.com/phuonguno98/unomon/pkg/metrics"
	"github.com/shirou/gopsutil/v3/host"
)

// Dependency injection points for testing
var sensorsTemperatures = host.SensorsTemperatures

// SensorCollector collects raw hardware temperature readings.
type SensorCollector struct{}

// NewSensorCollector creates a new sensor collector instance.
func NewSensorCollector() *SensorCollector {
	return &SensorCollector{}
}

// Collect returns every sensor reading in the order the platform reports
// them. Partial results (some sensors unreadable) are kept; an error is only
// returned when nothing could be read.
func (s *SensorCollector) Collect() ([]metrics.RawTemperature, error) {
	temps, err := sensorsTemperatures()
	if err != nil && len(temps) == 0 {
		return nil, fmt.Errorf("failed to read temperature sensors: %w", err)
	}

	result := make([]metrics.RawTemperature, 0, len(temps))
	for _, t := range temps {
		// Unpopulated sensors report exactly zero.
		if t.Temperature == 0 {
			continue
		}
		result = append(result, metrics.RawTemperature{
			Label: t.SensorKey,
			Value: t.Temperature,
		})
	}

	return result, nil
}

// Name returns the collector name for logging purposes.
func (s *SensorCollector) Name() string {
	return "Sensors"
}
