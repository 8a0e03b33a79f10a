//go:build darwin

package sysinfo

import (
	"fmt"
	"os/exec"
)

// GetDisplay returns the primary display on macOS.
func GetDisplay() (Display, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return Display{}, fmt.Errorf("failed to run system_profiler: %w", err)
	}
	return parseSystemProfiler(out)
}
