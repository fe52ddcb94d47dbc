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

// Package exporter renders retained metrics in tabular formats.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// TimestampLayout is the timestamp format of the first CSV column.
const TimestampLayout = "2006-01-02 15:04:05"

// WriteHistoryCSV writes the temperature history as CSV, one row per entry
// and one column per sensor label. Labels are sorted so the column order is
// stable across calls; a sensor missing from an entry leaves its cell empty.
func WriteHistoryCSV(w io.Writer, entries []metrics.HistoryEntry, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	labels := sensorLabels(entries)
	cw := csv.NewWriter(w)

	if err := cw.Write(header(labels)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		if err := cw.Write(buildRow(entry, labels, loc)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func sensorLabels(entries []metrics.HistoryEntry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, r := range e.Readings {
			seen[r.Label] = struct{}{}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func header(labels []string) []string {
	h := make([]string, 0, len(labels)+1)
	h = append(h, "Timestamp")
	for _, l := range labels {
		h = append(h, fmt.Sprintf("%s (°C)", l))
	}
	return h
}

func buildRow(entry metrics.HistoryEntry, labels []string, loc *time.Location) []string {
	temps := make(map[string]float64, len(entry.Readings))
	for _, r := range entry.Readings {
		// Duplicate labels keep the first reading.
		if _, ok := temps[r.Label]; !ok {
			temps[r.Label] = r.Temp
		}
	}

	row := make([]string, 0, len(labels)+1)
	row = append(row, entry.Timestamp.In(loc).Format(TimestampLayout))
	for _, l := range labels {
		if t, ok := temps[l]; ok {
			row = append(row, fmt.Sprintf("%.1f", t))
		} else {
			row = append(row, "")
		}
	}
	return row
}
