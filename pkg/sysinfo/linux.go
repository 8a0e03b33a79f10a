//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"
)

// GetDisplay returns the primary display on Linux using xdpyinfo.
func GetDisplay() (Display, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return Display{}, fmt.Errorf("failed to get screen resolution: %w", err)
	}
	return parseXdpyinfo(string(out))
}
