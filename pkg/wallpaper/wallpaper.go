// Package wallpaper implements the wallpaper chooser: the catalog of bundled
// wallpapers, thumbnail and preview decoding, and applying or saving the selection.
package wallpaper

import (
	"errors"
	"image"
	"io"

	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
)

// OS interface defines the operating system specific operations.
type OS interface {
	getDisplay() (sysinfo.Display, error)
	setWallpaper(path string) error
}

// AssetSource resolves and opens wallpaper assets by identifier.
type AssetSource interface {
	Resolve(id string) bool
	Open(id string) (io.ReadCloser, error)
}

// Poster runs fn on the UI goroutine. All UI-facing state is mutated only from
// functions handed to a Poster.
type Poster func(fn func())

// Notifier is a function that notifies the user.
type Notifier func(title, message string)

// ThumbnailSink receives finished thumbnails.
type ThumbnailSink interface {
	InsertThumbnail(img image.Image, index int)
}

// PreviewSink displays the full-size preview of the selection.
type PreviewSink interface {
	ShowPreview(img image.Image)
}

var (
	// ErrNoBitmap is returned when an action needs a decoded wallpaper and none is loaded yet.
	ErrNoBitmap = errors.New("no wallpaper loaded")
	// ErrAlreadyApplied is returned when the apply latch was already consumed.
	ErrAlreadyApplied = errors.New("wallpaper already applied")
	// ErrMakeFolder is returned when the save directory cannot be created.
	ErrMakeFolder = errors.New("failed to make folder")
	// ErrIndexOutOfRange is returned for catalog indexes that do not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)
