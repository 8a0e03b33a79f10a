package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/slimroms/slimwallpaper/asset"
	"github.com/slimroms/slimwallpaper/config"
	"github.com/slimroms/slimwallpaper/pkg/wallpaper"
	"github.com/slimroms/slimwallpaper/util"
	"github.com/slimroms/slimwallpaper/util/log"
)

// ChooserApp is the wallpaper chooser window and the controller behind it.
type ChooserApp struct {
	app      fyne.App
	win      fyne.Window
	cfg      *config.AppConfig
	assetMgr *asset.Manager
	ctrl     *wallpaper.Controller
	strip    *ThumbnailStrip
	preview  *canvas.Image
	applyBtn *widget.Button
}

// NewChooserApp builds the chooser on a and starts loading thumbnails. opts are
// applied after the defaults, so tests can swap the executor or the poster.
func NewChooserApp(a fyne.App, opts ...wallpaper.Option) (*ChooserApp, error) {
	assetMgr := asset.NewManager()
	listsJSON, err := assetMgr.GetText(wallpaper.CatalogListsAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallpaper lists: %w", err)
	}
	lists, err := wallpaper.ParseCatalogLists([]byte(listsJSON))
	if err != nil {
		return nil, err
	}

	cfg := config.NewAppConfig(a.Preferences())
	ca := &ChooserApp{
		app:      a,
		cfg:      cfg,
		assetMgr: assetMgr,
		strip:    NewThumbnailStrip(float32(cfg.GetThumbnailSize())),
		preview:  canvas.NewImageFromImage(nil),
	}
	ca.preview.FillMode = canvas.ImageFillContain

	defaults := []wallpaper.Option{
		wallpaper.WithNotifier(ca.notify),
		wallpaper.WithThumbnailSink(ca.strip),
		wallpaper.WithPreviewSink(ca),
		wallpaper.WithAppliedHandler(ca.closeAfterApply),
	}
	ca.ctrl = wallpaper.NewController(cfg, assetMgr, lists, append(defaults, opts...)...)

	ca.buildWindow()
	ca.bindLifecycle()

	ca.ctrl.LoadCatalogAndThumbnails()
	ca.strip.OnSelectionChanged = ca.selectWallpaper
	if ca.ctrl.Catalog().Len() > 0 {
		ca.selectWallpaper(0)
	}
	return ca, nil
}

// Window returns the chooser window.
func (ca *ChooserApp) Window() fyne.Window {
	return ca.win
}

// SelectNext moves the selection one tile right.
func (ca *ChooserApp) SelectNext() {
	ca.strip.Select(ca.strip.SelectedIndex() + 1)
}

// SelectPrevious moves the selection one tile left.
func (ca *ChooserApp) SelectPrevious() {
	ca.strip.Select(ca.strip.SelectedIndex() - 1)
}

// Apply sets the previewed wallpaper as the desktop wallpaper.
func (ca *ChooserApp) Apply() {
	ca.applyWallpaper()
}

// ShowPreview displays the decoded selection.
func (ca *ChooserApp) ShowPreview(img image.Image) {
	ca.preview.Image = img
	ca.preview.Refresh()
}

func (ca *ChooserApp) notify(title, message string) {
	ca.app.SendNotification(fyne.NewNotification(title, message))
}

func (ca *ChooserApp) buildWindow() {
	ca.win = ca.app.NewWindow(config.AppName)
	if icon, err := ca.assetMgr.GetIcon("app.png"); err == nil {
		ca.app.SetIcon(icon)
		ca.win.SetIcon(icon)
	}

	ca.applyBtn = widget.NewButtonWithIcon(setWallpaperLabel, theme.ConfirmIcon(), ca.applyWallpaper)
	ca.applyBtn.Importance = widget.HighImportance

	top := container.NewHBox(ca.applyBtn)
	ca.win.SetContent(container.NewBorder(top, ca.strip, nil, nil, ca.preview))
	ca.win.SetMainMenu(ca.buildMainMenu())

	saveShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	ca.win.Canvas().AddShortcut(saveShortcut, func(fyne.Shortcut) { ca.saveWallpaper() })
	ca.win.Canvas().SetOnTypedKey(ca.typedKey)

	ca.win.Resize(fyne.NewSize(defaultWindowWidth, defaultWindowHeight))
	ca.win.SetMaster()
}

func (ca *ChooserApp) buildMainMenu() *fyne.MainMenu {
	save := fyne.NewMenuItem("Save", ca.saveWallpaper)
	save.Icon = theme.DocumentSaveIcon()
	save.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	fileMenu := fyne.NewMenu("File", save)

	update := fyne.NewMenuItem("Check for Updates", func() { go ca.checkForUpdates() })
	about := fyne.NewMenuItem("About "+config.AppName, func() {
		dialog.ShowInformation(config.AppName, fmt.Sprintf("%s %s", config.AppName, config.AppVersion), ca.win)
	})
	helpMenu := fyne.NewMenu("Help", update, about)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (ca *ChooserApp) bindLifecycle() {
	lc := ca.app.Lifecycle()
	lc.SetOnEnteredForeground(ca.ctrl.Resume)
	lc.SetOnExitedForeground(ca.ctrl.TrimMemory)
	ca.win.SetOnClosed(func() {
		ca.ctrl.Close()
		ca.strip.Clear()
	})
}

func (ca *ChooserApp) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyLeft:
		ca.SelectPrevious()
	case fyne.KeyRight:
		ca.SelectNext()
	}
}

func (ca *ChooserApp) selectWallpaper(index int) {
	if err := ca.ctrl.SelectImage(index); err != nil {
		log.Printf("Failed to select wallpaper %d: %v", index, err)
	}
}

func (ca *ChooserApp) applyWallpaper() {
	err := ca.ctrl.ApplyWallpaper()
	switch {
	case errors.Is(err, wallpaper.ErrAlreadyApplied):
		log.Debugf("Wallpaper already applied this session")
	case err != nil:
		log.Printf("Failed to apply wallpaper: %v", err)
	}
}

// closeAfterApply dismisses the chooser once the desktop shows the new wallpaper.
func (ca *ChooserApp) closeAfterApply() {
	ca.win.Close()
}

func (ca *ChooserApp) saveWallpaper() {
	if err := ca.ctrl.SaveWallpaper(ca.strip.SelectedIndex()); err != nil {
		log.Printf("Failed to save wallpaper: %v", err)
	}
}

// checkForUpdates runs off the UI goroutine and reports back through fyne.Do.
func (ca *ChooserApp) checkForUpdates() {
	ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout*time.Second)
	defer cancel()

	result, err := util.CheckForUpdates(ctx, nil)
	fyne.Do(func() {
		if err != nil {
			log.Printf("Update check failed: %v", err)
			dialog.ShowError(errors.New("could not check for updates"), ca.win)
			return
		}
		if result.CurrentVersion == "" {
			dialog.ShowInformation(config.AppName, "This build has no version. The latest release is "+result.LatestVersion+".", ca.win)
			return
		}
		if !result.UpdateAvailable {
			dialog.ShowInformation(config.AppName, "You are running the latest version.", ca.win)
			return
		}

		link, parseErr := url.Parse(result.ReleaseURL)
		if parseErr != nil || result.ReleaseURL == "" {
			dialog.ShowInformation(config.AppName, "Version "+result.LatestVersion+" is available.", ca.win)
			return
		}
		dialog.ShowCustom(config.AppName, "Close", container.NewVBox(
			widget.NewLabel("Version "+result.LatestVersion+" is available."),
			widget.NewHyperlink("Open release page", link),
		), ca.win)
	})
}
