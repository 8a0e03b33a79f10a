//go:build windows

package sysinfo

import (
	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
	getDpiForSystem  = user32.NewProc("GetDpiForSystem")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// GetDisplay returns the primary display in pixels along with the system DPI scale.
func GetDisplay() (Display, error) {
	width, _, err := getSystemMetrics.Call(uintptr(smCXScreen))
	if width == 0 {
		return Display{}, err
	}
	height, _, err := getSystemMetrics.Call(uintptr(smCYScreen))
	if height == 0 {
		return Display{}, err
	}

	d := Display{Width: int(width), Height: int(height), Scale: 1}
	// GetDpiForSystem is Windows 10+; older systems keep scale 1.
	if getDpiForSystem.Find() == nil {
		if dpi, _, _ := getDpiForSystem.Call(); dpi > 0 {
			d.Scale = float64(dpi) / BaselineDPI
		}
	}
	return d, nil
}
