package asset

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"fyne.io/fyne/v2"

	"github.com/slimroms/slimwallpaper/util/log"
)

//go:embed icons/* text/* wallpapers/*
var assets embed.FS

// WallpaperDir is the asset directory wallpapers are addressed under.
const WallpaperDir = "wallpapers"

// WallpaperExt is the extension of wallpaper assets.
const WallpaperExt = ".png"

// ErrAssetNotFound is returned when a named asset does not exist.
var ErrAssetNotFound = errors.New("asset not found")

// Manager manages the loading of bundled assets.
type Manager struct {
	fsys fs.FS
}

// NewManager creates a new asset manager over the embedded assets.
func NewManager() *Manager {
	return &Manager{fsys: assets}
}

// NewManagerFS creates an asset manager over an arbitrary file system laid out like
// the embedded one.
func NewManagerFS(fsys fs.FS) *Manager {
	return &Manager{fsys: fsys}
}

// WallpaperPath returns the asset path of the wallpaper with the given identifier.
func WallpaperPath(id string) string {
	return path.Join(WallpaperDir, id+WallpaperExt)
}

// Resolve reports whether a wallpaper asset exists for id.
func (am *Manager) Resolve(id string) bool {
	if id == "" || !fs.ValidPath(WallpaperPath(id)) {
		return false
	}
	info, err := fs.Stat(am.fsys, WallpaperPath(id))
	return err == nil && !info.IsDir()
}

// Open opens the wallpaper asset with the given identifier.
func (am *Manager) Open(id string) (io.ReadCloser, error) {
	if !am.Resolve(id) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, WallpaperPath(id))
	}
	return am.fsys.Open(WallpaperPath(id))
}

// GetIcon loads and returns embedded icon asset by name.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is empty")
	}

	iconData, err := fs.ReadFile(am.fsys, "icons/"+name)
	if err != nil {
		log.Println("Error loading icon:", err)
		return nil, err
	}

	return fyne.NewStaticResource(name, iconData), nil
}

// GetText loads and returns embedded text asset by name.
func (am *Manager) GetText(name string) (string, error) {
	textBytes, err := fs.ReadFile(am.fsys, "text/"+name)
	if err != nil {
		log.Println("Error loading text:", err)
		return "", err
	}
	return string(textBytes), nil
}
