package ui

// defaultWindowWidth and defaultWindowHeight size the chooser window on first show.
const (
	defaultWindowWidth  = 900
	defaultWindowHeight = 640
)

// tileHighlightWidth is the stroke width of the selected tile's border
const tileHighlightWidth = 3

// setWallpaperLabel is the copy for the apply button
const setWallpaperLabel = "Set wallpaper"

// updateCheckTimeout bounds the release lookup behind Help > Check for Updates
const updateCheckTimeout = 15 // seconds
