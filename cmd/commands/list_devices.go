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

package commands

import (
	"fmt"
	"os"

	"github.com/phuonguno98/unomon/internal/devices"
	"github.com/spf13/cobra"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List disks, network interfaces and temperature sensors",
	Long: `List the disk devices, network interfaces and temperature sensors
visible to UnoMon. This helps to configure include/exclude filters accurately
and to check which sensors feed the temperature history.

Examples:
  # List all available devices
  unomon list-devices

  # Use the output to configure filters
  unomon serve --include-disks="/dev/nvme0n1p2" --exclude-networks="lo"`,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(_ *cobra.Command, _ []string) error {
	fmt.Println("\n========================================")
	fmt.Println("   UnoMon - Available Devices")
	fmt.Println("========================================")

	disks, err := devices.ListDisks()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing disks: %v\n", err)
	case len(disks) == 0:
		fmt.Println("\nNo disk devices found.")
	default:
		fmt.Print(devices.FormatDisksTable(disks))
		fmt.Printf("\nExample: unomon serve --include-disks=\"%s\"\n", disks[0].Name)
	}

	ifaces, err := devices.ListNetworkInterfaces()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error listing network interfaces: %v\n", err)
	case len(ifaces) == 0:
		fmt.Println("\nNo network interfaces found.")
	default:
		fmt.Print(devices.FormatNetworksTable(ifaces))
		fmt.Printf("\nExample: unomon serve --exclude-networks=\"%s\"\n", ifaces[0].Name)
	}

	sensors, err := devices.ListSensors()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error reading temperature sensors: %v\n", err)
	case len(sensors) == 0:
		fmt.Println("\nNo temperature sensors found.")
	default:
		fmt.Print(devices.FormatSensorsTable(sensors))
	}

	fmt.Println("\nNotes:")
	fmt.Println("  - Use comma to separate multiple devices: --exclude-disks=\"dev1,dev2\"")
	fmt.Println("  - Exclude filters take priority over include filters")
	fmt.Println("  - Empty include list means monitor all devices (except excluded)")
	fmt.Println()

	return nil
}
