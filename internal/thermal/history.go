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

package thermal

import (
	"sync"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultHistorySize is the number of entries kept when no size is configured.
const DefaultHistorySize = 60

// History is a fixed-capacity ring of temperature snapshots. Once full, each
// Append evicts the oldest entry. It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []metrics.HistoryEntry
	head    int // index of the oldest entry
	size    int
}

// NewHistory creates a history holding at most capacity entries.
// A non-positive capacity falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		entries: make([]metrics.HistoryEntry, capacity),
	}
}

// Append adds an entry at the tail, evicting the head when at capacity.
func (h *History) Append(entry metrics.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.head+h.size)%capacity] = entry
		h.size++
		return
	}

	h.entries[h.head] = entry
	h.head = (h.head + 1) % capacity
}

// Entries returns a copy of all entries ordered oldest to newest.
func (h *History) Entries() []metrics.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]metrics.HistoryEntry, 0, h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, h.entries[(h.head+i)%len(h.entries)])
	}
	return out
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Cap returns the maximum number of entries.
func (h *History) Cap() int {
	return len(h.entries)
}
