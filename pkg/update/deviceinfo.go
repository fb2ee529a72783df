// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package update

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/murr2k/raspberry-pi-pico/pkg/hal"
)

// Version is the firmware/SDK version reported by INFO.
const Version = "2.1.1"

// DeviceInfo is the read-only device identity: the unique board identifier
// and the static capacity constants. It is sourced from hardware at startup
// and never mutated.
type DeviceInfo struct {
	BoardID        hal.BoardID
	FlashSizeBytes int
	RAMSizeBytes   int
	CPU            string
	Version        string
}

// HostDeviceInfo reads the identity of the board this engine is running on.
func HostDeviceInfo() DeviceInfo {
	return DeviceInfo{
		BoardID:        hal.ReadBoardID(),
		FlashSizeBytes: hal.FlashSizeBytes,
		RAMSizeBytes:   hal.RAMSizeBytes,
		CPU:            hal.CPUDescription,
		Version:        Version,
	}
}

// BoardIDHex returns the board identifier hex-encoded.
func (d DeviceInfo) BoardIDHex() string {
	return hex.EncodeToString(d.BoardID[:])
}

// String formats the identity report for the operator.
func (d DeviceInfo) String() string {
	var b strings.Builder
	b.WriteString("Device Information:\n")
	fmt.Fprintf(&b, "  Board ID:    %s\n", d.BoardIDHex())
	fmt.Fprintf(&b, "  Flash Size:  %d bytes\n", d.FlashSizeBytes)
	fmt.Fprintf(&b, "  RAM Size:    %dKB\n", d.RAMSizeBytes/1024)
	fmt.Fprintf(&b, "  CPU:         %s\n", d.CPU)
	fmt.Fprintf(&b, "  SDK Version: %s\n", d.Version)
	return b.String()
}
