package config

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
)

// DefaultThumbnailSize is the bounding dimension of strip thumbnails, in pixels.
const DefaultThumbnailSize = 75

// ThumbnailSizeKey is the key for the thumbnail bounding size preference
const ThumbnailSizeKey = "thumbnail_size"

// DesiredMinWidthKey is the key for the declared minimum wallpaper width
const DesiredMinWidthKey = "desired_min_width"

// DesiredMinHeightKey is the key for the declared minimum wallpaper height
const DesiredMinHeightKey = "desired_min_height"

// SaveRootKey is the key for the save root override
const SaveRootKey = "save_root"

// ApplyCacheDirKey is the key for the apply staging directory override
const ApplyCacheDirKey = "apply_cache_dir"

// AppConfig holds the application-wide configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetThumbnailSize returns the bounding dimension of strip thumbnails.
func (c *AppConfig) GetThumbnailSize() int {
	size := c.prefs.IntWithFallback(ThumbnailSizeKey, DefaultThumbnailSize)
	if size <= 0 {
		return DefaultThumbnailSize
	}
	return size
}

// SetThumbnailSize sets the bounding dimension of strip thumbnails.
func (c *AppConfig) SetThumbnailSize(size int) {
	c.prefs.SetInt(ThumbnailSizeKey, size)
}

// GetDesiredMinimumSize returns the declared minimum wallpaper size.
// Zero in either dimension means nothing was declared.
func (c *AppConfig) GetDesiredMinimumSize() (int, int) {
	return c.prefs.IntWithFallback(DesiredMinWidthKey, 0), c.prefs.IntWithFallback(DesiredMinHeightKey, 0)
}

// SetDesiredMinimumSize declares a minimum wallpaper size.
func (c *AppConfig) SetDesiredMinimumSize(width, height int) {
	c.prefs.SetInt(DesiredMinWidthKey, width)
	c.prefs.SetInt(DesiredMinHeightKey, height)
}

// GetSaveRoot returns the root saved wallpapers are written under.
// Defaults to the user's home directory.
func (c *AppConfig) GetSaveRoot() string {
	if root := c.prefs.String(SaveRootKey); root != "" {
		return root
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return homeDir
}

// SetSaveRoot overrides the save root.
func (c *AppConfig) SetSaveRoot(root string) {
	c.prefs.SetString(SaveRootKey, root)
}

// GetSaveDir returns the directory saved wallpapers are written to.
func (c *AppConfig) GetSaveDir() string {
	return filepath.Join(c.GetSaveRoot(), filepath.FromSlash(SaveSubDir))
}

// GetApplyCacheDir returns the directory images are staged in before being applied.
func (c *AppConfig) GetApplyCacheDir() string {
	if dir := c.prefs.String(ApplyCacheDirKey); dir != "" {
		return dir
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, strings.ToLower(AppName), ApplyCacheSubDir)
}

// SetApplyCacheDir overrides the apply staging directory.
func (c *AppConfig) SetApplyCacheDir(dir string) {
	c.prefs.SetString(ApplyCacheDirKey, dir)
}
