package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"
)

// ThumbnailStrip is a horizontally scrolling row of tappable wallpaper thumbnails.
// All methods must be called on the UI goroutine.
type ThumbnailStrip struct {
	widget.BaseWidget

	// OnSelectionChanged is called after a tile is tapped or selected from the keyboard.
	OnSelectionChanged func(index int)

	tileSize float32
	tiles    []*thumbnailTile
	selected int
	row      *fyne.Container
	scroll   *container.Scroll
}

// NewThumbnailStrip creates an empty strip whose tiles are tileSize square.
func NewThumbnailStrip(tileSize float32) *ThumbnailStrip {
	s := &ThumbnailStrip{tileSize: tileSize}
	s.row = container.NewHBox()
	s.scroll = container.NewHScroll(s.row)
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *ThumbnailStrip) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.scroll)
}

// MinSize keeps the strip one tile tall regardless of the scroll container.
func (s *ThumbnailStrip) MinSize() fyne.Size {
	pad := theme.Padding()
	return fyne.NewSize(s.tileSize+2*pad, s.tileSize+2*pad)
}

// InsertThumbnail puts img at index, replacing what is there. Missing tiles before
// index are added as empty placeholders so positions never shift.
func (s *ThumbnailStrip) InsertThumbnail(img image.Image, index int) {
	if index < 0 {
		return
	}
	for len(s.tiles) <= index {
		s.appendTile()
	}
	s.tiles[index].setImage(img)
}

func (s *ThumbnailStrip) appendTile() {
	index := len(s.tiles)
	tile := newThumbnailTile(s.tileSize, func() { s.selectIndex(index) })
	tile.setHighlighted(index == s.selected)
	s.tiles = append(s.tiles, tile)
	s.row.Add(tile)
}

// SelectedIndex returns the last selected index, 0 if nothing was tapped yet.
func (s *ThumbnailStrip) SelectedIndex() int {
	return s.selected
}

// Select moves the selection to index and scrolls it into view. Indexes outside
// the strip are ignored.
func (s *ThumbnailStrip) Select(index int) {
	if index < 0 || index >= len(s.tiles) {
		return
	}
	s.selectIndex(index)
	s.scrollTo(index)
}

// Len returns the number of tiles, placeholders included.
func (s *ThumbnailStrip) Len() int {
	return len(s.tiles)
}

// Clear removes every tile and resets the selection.
func (s *ThumbnailStrip) Clear() {
	s.tiles = nil
	s.selected = 0
	s.row.RemoveAll()
	s.scroll.Offset = fyne.NewPos(0, 0)
	s.scroll.Refresh()
}

func (s *ThumbnailStrip) selectIndex(index int) {
	if s.selected < len(s.tiles) {
		s.tiles[s.selected].setHighlighted(false)
	}
	s.selected = index
	s.tiles[index].setHighlighted(true)

	if s.OnSelectionChanged != nil {
		s.OnSelectionChanged(index)
	}
}

func (s *ThumbnailStrip) scrollTo(index int) {
	tile := s.tiles[index]
	left := tile.Position().X
	right := left + tile.Size().Width
	view := s.scroll.Size().Width

	offset := s.scroll.Offset
	switch {
	case left < offset.X:
		offset.X = left
	case right > offset.X+view:
		offset.X = right - view
	default:
		return
	}
	s.scroll.Offset = offset
	s.scroll.Refresh()
}

// thumbnailTile shows one center-cropped thumbnail.
type thumbnailTile struct {
	widget.BaseWidget

	size      float32
	onTapped  func()
	image     *canvas.Image
	border    *canvas.Rectangle
	backplate *canvas.Rectangle
}

func newThumbnailTile(size float32, onTapped func()) *thumbnailTile {
	t := &thumbnailTile{
		size:      size,
		onTapped:  onTapped,
		image:     canvas.NewImageFromImage(nil),
		border:    canvas.NewRectangle(color.Transparent),
		backplate: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
	}
	t.image.FillMode = canvas.ImageFillStretch
	t.image.ScaleMode = canvas.ImageScaleSmooth
	t.image.SetMinSize(fyne.NewSquareSize(size))
	t.border.StrokeWidth = tileHighlightWidth
	t.border.StrokeColor = color.Transparent
	t.ExtendBaseWidget(t)
	return t
}

func (t *thumbnailTile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(t.backplate, t.image, t.border))
}

func (t *thumbnailTile) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

// setImage crops img to a square so tiles line up however the wallpaper is shaped.
func (t *thumbnailTile) setImage(img image.Image) {
	if img != nil {
		side := min(img.Bounds().Dx(), img.Bounds().Dy())
		if side > 0 {
			img = imaging.Fill(img, side, side, imaging.Center, imaging.Linear)
		}
	}
	t.image.Image = img
	t.image.Refresh()
}

func (t *thumbnailTile) setHighlighted(on bool) {
	if on {
		t.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		t.border.StrokeColor = color.Transparent
	}
	t.border.Refresh()
}

func (t *thumbnailTile) highlighted() bool {
	return t.border.StrokeColor != color.Transparent
}
