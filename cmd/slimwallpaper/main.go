package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/slimroms/slimwallpaper/config"
	"github.com/slimroms/slimwallpaper/pkg/hotkey"
	"github.com/slimroms/slimwallpaper/ui"
	"github.com/slimroms/slimwallpaper/util/log"
)

func main() {
	// Only one chooser may write to the apply cache at a time
	acquired, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to acquire single instance lock: %v", err)
	}
	if !acquired {
		fmt.Printf("Another instance of %s is already running.\n", config.AppName)
		os.Exit(0)
	}
	defer releaseLock()

	log.Printf("Starting %s %s", config.AppName, config.AppVersion)

	a := app.NewWithID(config.AppID)
	chooser, err := ui.NewChooserApp(a)
	if err != nil {
		releaseLock()
		log.Fatalf("Failed to start %s: %v", config.AppName, err)
	}

	a.Lifecycle().SetOnStarted(func() {
		stopHotkeys := hotkey.StartListeners(hotkey.Actions{
			Next:     chooser.SelectNext,
			Previous: chooser.SelectPrevious,
			Apply:    chooser.Apply,
		}, fyne.Do)
		a.Lifecycle().SetOnStopped(stopHotkeys)
	})

	chooser.Window().ShowAndRun()
}
