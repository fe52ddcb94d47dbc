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

//go:build linux && cgo

package collector

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

const milliWattsToWatts = 1000.0

// ErrNVMLFailure wraps every failed NVML call.
var ErrNVMLFailure = errors.New("NVML operation failed")

// nvmlBackend queries the first NVIDIA device through NVML. Initialization
// is attempted once; a host without the driver is treated as having no GPU.
type nvmlBackend struct {
	initialized bool
	initErr     error
}

func newGPUBackend() gpuBackend {
	return &nvmlBackend{}
}

func nvmlError(op string, ret nvml.Return) error {
	return fmt.Errorf("%w: %s: %v", ErrNVMLFailure, op, nvml.ErrorString(ret))
}

func (b *nvmlBackend) ensureInit() error {
	if b.initialized || b.initErr != nil {
		return b.initErr
	}
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		b.initErr = nvmlError("init", ret)
		return b.initErr
	}
	b.initialized = true
	return nil
}

func (b *nvmlBackend) Query() (*metrics.GPUInfo, error) {
	if b.ensureInit() != nil {
		return nil, nil
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, nvmlError("device count", ret)
	}
	if count == 0 {
		return nil, nil
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return nil, nvmlError("device handle", ret)
	}

	utilization, ret := device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return nil, nvmlError("utilization", ret)
	}
	memory, ret := device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return nil, nvmlError("memory info", ret)
	}

	info := &metrics.GPUInfo{
		Vendor:      "NVIDIA",
		Usage:       float64(utilization.Gpu),
		MemoryTotal: memory.Total,
		MemoryUsed:  memory.Used,
	}
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		info.Model = name
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		t := float64(temp)
		info.Temperature = &t
	}
	if power, ret := device.GetPowerUsage(); ret == nvml.SUCCESS {
		w := float64(power) / milliWattsToWatts
		info.PowerUsage = &w
	}

	return info, nil
}

func (b *nvmlBackend) Close() error {
	if !b.initialized {
		return nil
	}
	b.initialized = false
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return nvmlError("shutdown", ret)
	}
	return nil
}
