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

import "github.com/phuonguno98/unomon/pkg/metrics"

// gpuBackend is implemented once per build target. Query returns nil, nil
// when the host has no supported GPU.
type gpuBackend interface {
	Query() (*metrics.GPUInfo, error)
	Close() error
}

// GPUCollector reports utilization, memory, temperature and power of the primary GPU.
type GPUCollector struct {
	backend gpuBackend
}

// NewGPUCollector creates a GPU collector for the current platform.
func NewGPUCollector() *GPUCollector {
	return &GPUCollector{backend: newGPUBackend()}
}

// Collect queries the primary GPU. A nil result without error means no GPU.
func (g *GPUCollector) Collect() (*metrics.GPUInfo, error) {
	return g.backend.Query()
}

// Close releases the driver handle, if any.
func (g *GPUCollector) Close() error {
	return g.backend.Close()
}

// Name returns the collector name for logging purposes.
func (g *GPUCollector) Name() string {
	return "GPU"
}
