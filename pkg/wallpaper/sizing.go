package wallpaper

import (
	"math"

	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
)

const (
	// WallpaperScreensSpan is how many screen widths a small-screen wallpaper spans.
	WallpaperScreensSpan = 2.0

	// LargeScreenMinWidthDp is the smallest width, in device-independent units, of a large screen.
	LargeScreenMinWidthDp = 720

	// At an aspect ratio of 16/10 the parallax travel spans 1.5 screen widths,
	// at 10/16 it spans 1.2.
	aspectRatioLandscape            = 16.0 / 10.0
	aspectRatioPortrait             = 10.0 / 16.0
	wallpaperWidthToScreenLandscape = 1.5
	wallpaperWidthToScreenPortrait  = 1.2
)

// CalculateScaleFactor returns the largest power of two that keeps both halved
// natural dimensions above the requested ones, or 1 when the image already fits.
func CalculateScaleFactor(naturalWidth, naturalHeight, targetWidth, targetHeight int) int {
	factor := 1
	if targetWidth <= 0 || targetHeight <= 0 {
		return factor
	}

	if naturalHeight > targetHeight || naturalWidth > targetWidth {
		halfHeight := naturalHeight / 2
		halfWidth := naturalWidth / 2

		for halfHeight/factor > targetHeight && halfWidth/factor > targetWidth {
			factor *= 2
		}
	}

	return factor
}

// WallpaperWidthRatio returns, as a multiple of the screen's longer side, how wide a
// wallpaper must be to cover the parallax travel for a screen of the given size.
func WallpaperWidthRatio(width, height int) float64 {
	return widthRatioForAspect(float64(width) / float64(height))
}

// widthRatioForAspect solves
//
//	(16/10)x + y = 1.5
//	(10/16)x + y = 1.2
//
// and evaluates x*aspect + y.
func widthRatioForAspect(aspect float64) float64 {
	x := (wallpaperWidthToScreenLandscape - wallpaperWidthToScreenPortrait) /
		(aspectRatioLandscape - aspectRatioPortrait)
	y := wallpaperWidthToScreenPortrait - x*aspectRatioPortrait
	return x*aspect + y
}

// TargetWallpaperSize returns the size a preview is scaled to. A declared minimum
// size wins when both dimensions are non-zero; otherwise it is derived from the display.
func TargetWallpaperSize(desiredWidth, desiredHeight int, display sysinfo.Display) (int, int) {
	if desiredWidth != 0 && desiredHeight != 0 {
		return desiredWidth, desiredHeight
	}

	maxDim := max(display.Width, display.Height)
	minDim := min(display.Width, display.Height)

	if display.SmallestWidthDp() >= LargeScreenMinWidthDp {
		return int(float64(maxDim) * WallpaperWidthRatio(maxDim, minDim)), maxDim
	}
	return max(int(float64(minDim)*WallpaperScreensSpan), maxDim), maxDim
}

// ThumbnailBounds shrinks width x height to fit in a maxDim square, keeping the
// aspect ratio. Images that already fit are returned unchanged.
func ThumbnailBounds(maxDim, width, height int) (int, int) {
	if width <= 0 || height <= 0 || maxDim <= 0 {
		return 0, 0
	}
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	scale := math.Min(float64(maxDim)/float64(width), float64(maxDim)/float64(height))
	return max(1, int(math.Round(float64(width)*scale))), max(1, int(math.Round(float64(height)*scale)))
}
