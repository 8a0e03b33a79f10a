// check_dimensions prints how every bundled wallpaper would be sized on a given display.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/slimroms/slimwallpaper/asset"
	"github.com/slimroms/slimwallpaper/config"
	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
	"github.com/slimroms/slimwallpaper/pkg/wallpaper"
)

func main() {
	width := flag.Int("width", 1920, "display width in pixels")
	height := flag.Int("height", 1080, "display height in pixels")
	scale := flag.Float64("scale", 1, "display scale factor")
	thumb := flag.Int("thumb", config.DefaultThumbnailSize, "thumbnail bounding size")
	flag.Parse()

	display := sysinfo.Display{Width: *width, Height: *height, Scale: *scale}
	if !display.Valid() {
		fmt.Println("Error: invalid display", display)
		os.Exit(1)
	}

	am := asset.NewManager()
	listsJSON, err := am.GetText(wallpaper.CatalogListsAsset)
	if err != nil {
		fmt.Printf("Error loading catalog lists: %v\n", err)
		os.Exit(1)
	}
	lists, err := wallpaper.ParseCatalogLists([]byte(listsJSON))
	if err != nil {
		fmt.Printf("Error parsing catalog lists: %v\n", err)
		os.Exit(1)
	}

	targetW, targetH := wallpaper.TargetWallpaperSize(0, 0, display)
	fmt.Printf("Display: %dx%d @%.2fx (smallest width %ddp)\n", display.Width, display.Height, display.Scale, display.SmallestWidthDp())
	fmt.Printf("Target wallpaper: %dx%d\n\n", targetW, targetH)

	catalog := wallpaper.NewCatalog(lists, am)
	for _, id := range catalog.IDs() {
		cfg, err := decodeConfig(am, id)
		if err != nil {
			fmt.Printf("%-16s error: %v\n", id, err)
			continue
		}
		tw, th := wallpaper.ThumbnailBounds(*thumb, cfg.Width, cfg.Height)
		fmt.Printf("%-16s %5dx%-5d preview factor %-3d thumb %dx%d (factor %d)\n",
			id, cfg.Width, cfg.Height,
			wallpaper.CalculateScaleFactor(cfg.Width, cfg.Height, targetW, targetH),
			tw, th, wallpaper.CalculateScaleFactor(cfg.Width, cfg.Height, tw, th))
	}

	skipped := len(lists.Primary) + len(lists.Extra) - catalog.Len()
	if skipped > 0 {
		fmt.Printf("\n%d listed wallpapers are missing or duplicated\n", skipped)
	}
}

func decodeConfig(am *asset.Manager, id string) (image.Config, error) {
	rc, err := am.Open(id)
	if err != nil {
		return image.Config{}, err
	}
	defer rc.Close()
	cfg, _, err := image.DecodeConfig(rc)
	return cfg, err
}
