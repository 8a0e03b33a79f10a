//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
)

// macOSOS implements the OS interface for macOS.
type macOSOS struct{}

// getOS returns a new instance of the macOSOS struct.
func getOS() OS {
	return &macOSOS{}
}

// setWallpaper sets the wallpaper on every desktop through System Events.
func (m *macOSOS) setWallpaper(imagePath string) error {
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to POSIX file "%s"`,
		strings.ReplaceAll(imagePath, `"`, `\"`))

	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// getDisplay returns the primary display on macOS.
func (m *macOSOS) getDisplay() (sysinfo.Display, error) {
	return sysinfo.GetDisplay()
}
