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

package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

func TestWriteHistoryCSV(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []metrics.HistoryEntry{
		{
			Timestamp: base,
			Readings: []metrics.TemperatureReading{
				{Label: "nvme", Temp: 41.26, Status: metrics.TierNormal},
				{Label: "cpu", Temp: 55, Status: metrics.TierNormal},
			},
		},
		{
			Timestamp: base.Add(time.Second),
			Readings: []metrics.TemperatureReading{
				{Label: "cpu", Temp: 81, Status: metrics.TierCritical},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, entries, time.UTC); err != nil {
		t.Fatalf("WriteHistoryCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV back: %v", err)
	}

	want := [][]string{
		{"Timestamp", "cpu (°C)", "nvme (°C)"},
		{"2026-03-01 10:00:00", "55.0", "41.3"},
		{"2026-03-01 10:00:01", "81.0", ""},
	}
	if len(records) != len(want) {
		t.Fatalf("Row count = %d, want %d", len(records), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("Cell [%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestWriteHistoryCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, nil, nil); err != nil {
		t.Fatalf("WriteHistoryCSV() error = %v", err)
	}
	if got := buf.String(); got != "Timestamp\n" {
		t.Errorf("Output = %q, want header only", got)
	}
}

func TestWriteHistoryCSV_Timezone(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	entries := []metrics.HistoryEntry{{Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}}

	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, entries, loc); err != nil {
		t.Fatalf("WriteHistoryCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if records[1][0] != "2026-03-01 17:00:00" {
		t.Errorf("Timestamp = %q, want local time", records[1][0])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteHistoryCSV_WriterError(t *testing.T) {
	entries := []metrics.HistoryEntry{{Timestamp: time.Now()}}
	if err := WriteHistoryCSV(failingWriter{}, entries, time.UTC); err == nil {
		t.Error("WriteHistoryCSV() expected error from failing writer")
	}
}
