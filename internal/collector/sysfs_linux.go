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

//go:build linux

package collector

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// Filesystem roots, overridable in tests.
var (
	sysRoot  = "/sys"
	procRoot = "/proc"
)

// readPowerInfo inspects /sys/class/power_supply. A host without any supply
// entries is treated as a mains-powered desktop.
func readPowerInfo() (metrics.PowerInfo, error) {
	info := metrics.PowerInfo{ACPowered: true}

	supplies, err := filepath.Glob(filepath.Join(sysRoot, "class", "power_supply", "*"))
	if err != nil {
		return info, fmt.Errorf("failed to list power supplies: %w", err)
	}

	sawMains := false
	mainsOnline := false
	for _, dir := range supplies {
		switch readString(filepath.Join(dir, "type")) {
		case "Mains", "USB":
			sawMains = true
			if v, err := readInt(filepath.Join(dir, "online")); err == nil && v == 1 {
				mainsOnline = true
			}
		case "Battery":
			if v, err := readInt(filepath.Join(dir, "present")); err == nil && v == 0 {
				continue
			}
			if info.BatteryPresent {
				continue // first battery only
			}
			info.BatteryPresent = true
			readBattery(dir, &info)
		}
	}

	if sawMains {
		info.ACPowered = mainsOnline
	}

	return info, nil
}

func readBattery(dir string, info *metrics.PowerInfo) {
	if v, err := readInt(filepath.Join(dir, "capacity")); err == nil {
		pct := float64(v)
		info.BatteryPercentage = &pct
	}

	// Energy-based batteries report µWh/µW; charge-based ones report µAh/µA.
	var remaining, rate, watts float64
	if p, err := readInt(filepath.Join(dir, "power_now")); err == nil && p > 0 {
		rate = float64(p)
		watts = rate / 1e6
		if e, err := readInt(filepath.Join(dir, "energy_now")); err == nil {
			remaining = float64(e)
		}
	} else if c, err := readInt(filepath.Join(dir, "current_now")); err == nil && c > 0 {
		rate = float64(c)
		if uv, err := readInt(filepath.Join(dir, "voltage_now")); err == nil {
			watts = rate * float64(uv) / 1e12
		}
		if q, err := readInt(filepath.Join(dir, "charge_now")); err == nil {
			remaining = float64(q)
		}
	}

	if watts > 0 {
		info.PowerConsumption = &watts
	}
	if rate > 0 && remaining > 0 && readString(filepath.Join(dir, "status")) == "Discharging" {
		secs := uint64(remaining / rate * 3600)
		info.BatteryTimeRemaining = &secs
	}
}

// readInterrupts returns the total interrupt count from /proc/stat, or 0.
func readInterrupts() uint64 {
	f, err := os.Open(filepath.Join(procRoot, "stat"))
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "intr" {
			n, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}

func readString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readInt(path string) (int64, error) {
	return strconv.ParseInt(readString(path), 10, 64)
}
