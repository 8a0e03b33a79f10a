//go:build linux

package wallpaper

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct {
	getenv func(string) string
	run    func(name string, args ...string) error
}

// getOS returns a new instance of the linuxOS struct.
func getOS() OS {
	return &linuxOS{
		getenv: os.Getenv,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// getDisplay returns the primary display on Linux.
func (l *linuxOS) getDisplay() (sysinfo.Display, error) {
	return sysinfo.GetDisplay()
}

// desktopSession returns the lowercased desktop name and whether the session is Wayland.
func (l *linuxOS) desktopSession() (string, bool) {
	desktopEnv := l.getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = l.getenv("DESKTOP_SESSION")
	}
	return strings.ToLower(desktopEnv), l.getenv("WAYLAND_DISPLAY") != ""
}

// setWallpaper sets the desktop wallpaper on Linux, supporting X11 and some Wayland compositors.
func (l *linuxOS) setWallpaper(imagePath string) error {
	desktopEnv, wayland := l.desktopSession()

	switch {
	case strings.Contains(desktopEnv, "gnome"), strings.Contains(desktopEnv, "unity"),
		strings.Contains(desktopEnv, "cinnamon"), strings.Contains(desktopEnv, "mutter"):
		return l.setWallpaperGNOME(imagePath)
	case strings.Contains(desktopEnv, "kde"):
		return l.setWallpaperKDE(imagePath)
	case strings.Contains(desktopEnv, "xfce") && !wayland:
		return l.setWallpaperXFCE(imagePath)
	case strings.Contains(desktopEnv, "sway") && wayland:
		return l.setWallpaperSway(imagePath)
	case wayland:
		return fmt.Errorf("unsupported Wayland compositor: %q", desktopEnv)
	default:
		return fmt.Errorf("unsupported X11 desktop environment: %q", desktopEnv)
	}
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments.
// GNOME 42+ reads picture-uri-dark in dark mode; older releases lack the key.
func (l *linuxOS) setWallpaperGNOME(imagePath string) error {
	uri := "file://" + imagePath
	if err := l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
		return fmt.Errorf("gsettings picture-uri: %w", err)
	}
	_ = l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri)
	return nil
}

// setWallpaperKDE sets the wallpaper for Plasma, X11 or Wayland.
func (l *linuxOS) setWallpaperKDE(imagePath string) error {
	if err := l.run("plasma-apply-wallpaperimage", imagePath); err != nil {
		return fmt.Errorf("plasma-apply-wallpaperimage: %w", err)
	}
	return nil
}

// setWallpaperXFCE sets the wallpaper for XFCE.
func (l *linuxOS) setWallpaperXFCE(imagePath string) error {
	err := l.run("xfconf-query",
		"--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
	if err != nil {
		return fmt.Errorf("xfconf-query: %w", err)
	}
	return nil
}

// setWallpaperSway sets the wallpaper for Sway through its IPC.
func (l *linuxOS) setWallpaperSway(imagePath string) error {
	if err := l.run("swaymsg", "output", "*", "bg", imagePath, "fill"); err != nil {
		return fmt.Errorf("swaymsg: %w", err)
	}
	return nil
}
