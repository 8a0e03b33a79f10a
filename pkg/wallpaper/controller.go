package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"

	"fyne.io/fyne/v2"

	"github.com/slimroms/slimwallpaper/config"
	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
	"github.com/slimroms/slimwallpaper/util"
	"github.com/slimroms/slimwallpaper/util/log"
)

// User-facing messages.
const (
	MsgNoWallpaper       = "No wallpaper loaded yet."
	MsgMakeFolderFailed  = "Failed to make folder"
	MsgSaveFailed        = "Failed to save wallpaper."
	MsgSavedTo           = "Wallpaper saved to %s"
	MsgSetWallpaper      = "Wallpaper set."
	MsgSetWallpaperError = "Failed to set wallpaper."
)

// fallbackDisplay is used when the display cannot be queried.
var fallbackDisplay = sysinfo.Display{Width: 1920, Height: 1080, Scale: 1}

// errExecutorStopped is returned when work is requested after Close.
var errExecutorStopped = errors.New("decode workers stopped")

// decodeRequest is the in-flight full-size decode. Only the request whose
// generation matches the controller's may publish its result.
type decodeRequest struct {
	index      int
	id         string
	generation int
	ctx        context.Context
	cancel     context.CancelFunc
}

// Controller drives the chooser screen: it owns the catalog, the decoded source
// cache and the selection. Exported methods must be called on the UI goroutine;
// results computed by workers come back through the Poster.
type Controller struct {
	cfg       *config.AppConfig
	os        OS
	assets    AssetSource
	lists     CatalogLists
	dec       *decoder
	exec      Executor
	post      Poster
	notify    Notifier
	strip     ThumbnailSink
	preview   PreviewSink
	onSuccess func()

	ctx    context.Context
	cancel context.CancelFunc

	catalog    *Catalog
	cache      map[string]image.Image // full-resolution sources by id
	selected   int
	bitmap     image.Image
	loader     *decodeRequest
	generation *util.SafeCounter
	applied    *util.SafeFlag
}

// Option configures a Controller.
type Option func(*Controller)

// WithExecutor replaces the default two-worker pool.
func WithExecutor(e Executor) Option {
	return func(c *Controller) { c.exec = e }
}

// WithPoster replaces fyne.Do as the way results reach the UI goroutine.
func WithPoster(p Poster) Option {
	return func(c *Controller) { c.post = p }
}

// WithOS replaces the detected operating system.
func WithOS(o OS) Option {
	return func(c *Controller) { c.os = o }
}

// WithNotifier sets how messages reach the user.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithThumbnailSink sets where finished thumbnails go.
func WithThumbnailSink(s ThumbnailSink) Option {
	return func(c *Controller) { c.strip = s }
}

// WithPreviewSink sets where the decoded selection is shown.
func WithPreviewSink(s PreviewSink) Option {
	return func(c *Controller) { c.preview = s }
}

// WithAppliedHandler sets a function run on the UI goroutine after the wallpaper
// was set successfully.
func WithAppliedHandler(fn func()) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

// NewController creates a controller for one chooser session.
func NewController(cfg *config.AppConfig, assets AssetSource, lists CatalogLists, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:        cfg,
		assets:     assets,
		lists:      lists,
		dec:        newDecoder(),
		ctx:        ctx,
		cancel:     cancel,
		cache:      make(map[string]image.Image),
		generation: util.NewSafeInt(),
		applied:    util.NewSafeBool(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.os == nil {
		c.os = getOS()
	}
	if c.post == nil {
		c.post = fyne.Do
	}
	if c.notify == nil {
		c.notify = func(title, message string) { log.Printf("%s: %s", title, message) }
	}
	if c.strip == nil {
		c.strip = noopSink{}
	}
	if c.preview == nil {
		c.preview = noopSink{}
	}
	if c.exec == nil {
		c.exec = NewPool(DecodeWorkers)
	}
	return c
}

type noopSink struct{}

func (noopSink) InsertThumbnail(image.Image, int) {}
func (noopSink) ShowPreview(image.Image)          {}

// Catalog returns the catalog, or nil before LoadCatalogAndThumbnails.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Selection returns the selected index and its decoded wallpaper, which is nil
// until the first decode completes.
func (c *Controller) Selection() (int, image.Image) {
	return c.selected, c.bitmap
}

// LoadCatalogAndThumbnails builds the catalog and decodes a thumbnail for every
// entry. Thumbnails reach the strip in the order their decodes finish.
func (c *Controller) LoadCatalogAndThumbnails() {
	c.catalog = NewCatalog(c.lists, c.assets)
	log.Printf("Catalog loaded with %d wallpapers", c.catalog.Len())

	maxDim := c.cfg.GetThumbnailSize()
	for index, id := range c.catalog.IDs() {
		c.exec.Submit(c.ctx, func(ctx context.Context) {
			thumb, err := c.loadThumbnail(ctx, id, maxDim)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Printf("Failed to load thumbnail for %s: %v", id, err)
				}
				return
			}
			c.post(func() {
				if c.ctx.Err() != nil {
					return
				}
				c.strip.InsertThumbnail(thumb, index)
			})
		})
	}
}

func (c *Controller) loadThumbnail(ctx context.Context, id string, maxDim int) (image.Image, error) {
	src, err := c.openAndDecode(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.dec.thumbnail(ctx, src, maxDim)
}

func (c *Controller) openAndDecode(ctx context.Context, id string) (image.Image, error) {
	rc, err := c.assets.Open(id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return c.dec.decodeSource(ctx, rc)
}

// SelectImage cancels any pending full-size decode and starts decoding the wallpaper
// at index, scaled to the target wallpaper size.
func (c *Controller) SelectImage(index int) error {
	id, ok := c.catalogAt(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	c.cancelLoader()
	c.selected = index

	ctx, cancel := context.WithCancel(c.ctx)
	req := &decodeRequest{
		index:      index,
		id:         id,
		generation: c.generation.Increment(),
		ctx:        ctx,
		cancel:     cancel,
	}
	c.loader = req

	src := c.cache[id]
	if !c.exec.Submit(ctx, func(ctx context.Context) { c.decodePreview(ctx, req, src) }) {
		c.clearLoader(req)
		return errExecutorStopped
	}
	return nil
}

// decodePreview runs on a worker. src is the cached source, or nil.
func (c *Controller) decodePreview(ctx context.Context, req *decodeRequest, src image.Image) {
	var fresh image.Image
	if src == nil {
		var err error
		src, err = c.openAndDecode(ctx, req.id)
		if err != nil {
			c.post(func() { c.onPreviewDecoded(req, nil, nil, err) })
			return
		}
		fresh = src
	}

	width, height := c.targetSize()
	out, err := c.dec.fit(ctx, src, width, height)
	c.post(func() { c.onPreviewDecoded(req, fresh, out, err) })
}

// onPreviewDecoded publishes a finished decode unless it was superseded or cancelled.
func (c *Controller) onPreviewDecoded(req *decodeRequest, source, out image.Image, err error) {
	if source != nil && c.ctx.Err() == nil {
		c.cache[req.id] = source
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Failed to load wallpaper %s: %v", req.id, err)
		}
		c.clearLoader(req)
		return
	}

	if req.ctx.Err() != nil || req.generation != c.generation.Value() {
		log.Debugf("Discarding superseded preview for %s", req.id)
		return
	}

	c.bitmap = out
	c.clearLoader(req)
	c.preview.ShowPreview(out)
}

func (c *Controller) cancelLoader() {
	if c.loader != nil {
		c.loader.cancel()
		c.loader = nil
	}
}

func (c *Controller) clearLoader(req *decodeRequest) {
	req.cancel()
	if c.loader == req {
		c.loader = nil
	}
}

// targetSize returns the size previews are scaled to.
func (c *Controller) targetSize() (int, int) {
	desiredWidth, desiredHeight := c.cfg.GetDesiredMinimumSize()
	if desiredWidth != 0 && desiredHeight != 0 {
		return desiredWidth, desiredHeight
	}

	display, err := c.os.getDisplay()
	if err != nil || !display.Valid() {
		log.Printf("Could not query display, assuming %dx%d: %v", fallbackDisplay.Width, fallbackDisplay.Height, err)
		display = fallbackDisplay
	}
	return TargetWallpaperSize(0, 0, display)
}

// ApplyWallpaper hands the decoded selection to the OS. It runs at most once per
// Resume; a failed attempt still consumes the latch.
func (c *Controller) ApplyWallpaper() error {
	if c.bitmap == nil {
		c.notify(config.AppName, MsgNoWallpaper)
		return ErrNoBitmap
	}
	if !c.applied.TrySet() {
		log.Debugf("Ignoring repeated apply")
		return ErrAlreadyApplied
	}

	img := c.bitmap
	fm := c.fileManager()
	if !c.exec.Submit(c.ctx, func(ctx context.Context) {
		err := c.apply(fm, img)
		c.post(func() { c.onApplied(err) })
	}) {
		return errExecutorStopped
	}
	return nil
}

func (c *Controller) apply(fm *FileManager, img image.Image) error {
	path, err := fm.Stage(img)
	if err != nil {
		return fmt.Errorf("staging wallpaper: %w", err)
	}
	if err := c.os.setWallpaper(path); err != nil {
		return fmt.Errorf("setting wallpaper %s: %w", path, err)
	}
	return nil
}

func (c *Controller) onApplied(err error) {
	if err != nil {
		log.Printf("Failed to set wallpaper: %v", err)
		c.notify(config.AppName, MsgSetWallpaperError)
		return
	}
	c.notify(config.AppName, MsgSetWallpaper)
	if c.onSuccess != nil {
		c.onSuccess()
	}
}

// SaveWallpaper writes the decoded selection as a PNG named after the wallpaper at
// index. Success is judged by whether the file exists once the write is done.
func (c *Controller) SaveWallpaper(index int) error {
	id, ok := c.catalogAt(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	fm := c.fileManager()
	if err := fm.EnsureSaveDir(); err != nil {
		log.Printf("Failed to save wallpaper: %v", err)
		c.notify(config.AppName, MsgMakeFolderFailed)
		return err
	}
	path, err := fm.SavePath(id)
	if err != nil {
		c.notify(config.AppName, MsgSaveFailed)
		return err
	}

	img := c.bitmap
	if !c.exec.Submit(c.ctx, func(ctx context.Context) {
		if err := fm.WritePNG(path, img); err != nil {
			log.Printf("Failed to save wallpaper %s: %v", id, err)
		}
		saved := fm.Exists(path)
		c.post(func() { c.onSaved(path, saved) })
	}) {
		return errExecutorStopped
	}
	return nil
}

func (c *Controller) onSaved(path string, saved bool) {
	if !saved {
		c.notify(config.AppName, MsgSaveFailed)
		return
	}
	c.notify(config.AppName, fmt.Sprintf(MsgSavedTo, path))
}

func (c *Controller) fileManager() *FileManager {
	return NewFileManager(c.cfg.GetSaveDir(), c.cfg.GetApplyCacheDir())
}

func (c *Controller) catalogAt(index int) (string, bool) {
	if c.catalog == nil {
		return "", false
	}
	return c.catalog.At(index)
}

// Resume re-arms the apply latch. Call it whenever the chooser comes to the foreground.
func (c *Controller) Resume() {
	c.applied.Set(false)
}

// TrimMemory drops every cached source image.
func (c *Controller) TrimMemory() {
	if len(c.cache) > 0 {
		log.Debugf("Dropping %d cached wallpapers", len(c.cache))
	}
	c.cache = make(map[string]image.Image)
}

// Close cancels in-flight work and stops the workers. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.cancelLoader()
	c.cancel()
	c.exec.Stop()
}
