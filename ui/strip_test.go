package ui

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailStrip_InsertFillsPlaceholders(t *testing.T) {
	test.NewTempApp(t)
	s := NewThumbnailStrip(32)

	thumb := image.NewNRGBA(image.Rect(0, 0, 32, 18))
	s.InsertThumbnail(thumb, 2)

	require.Equal(t, 3, s.Len())
	assert.Nil(t, s.tiles[0].image.Image)
	assert.Nil(t, s.tiles[1].image.Image)
	require.NotNil(t, s.tiles[2].image.Image)
	assert.Equal(t, 18, s.tiles[2].image.Image.Bounds().Dx(), "Cropped to a square")
	assert.Equal(t, 18, s.tiles[2].image.Image.Bounds().Dy())

	s.InsertThumbnail(image.NewNRGBA(image.Rect(0, 0, 20, 20)), 0)
	assert.Equal(t, 3, s.Len(), "Filling a placeholder does not grow the strip")
	assert.NotNil(t, s.tiles[0].image.Image)
}

func TestThumbnailStrip_InsertIsIdempotent(t *testing.T) {
	test.NewTempApp(t)
	s := NewThumbnailStrip(32)

	thumb := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	s.InsertThumbnail(thumb, 1)
	s.InsertThumbnail(thumb, 1)

	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.row.Objects, 2)

	s.InsertThumbnail(thumb, -1)
	assert.Equal(t, 2, s.Len(), "Negative indexes are ignored")
}

func TestThumbnailStrip_Tap(t *testing.T) {
	test.NewTempApp(t)
	s := NewThumbnailStrip(32)
	for i := 0; i < 3; i++ {
		s.InsertThumbnail(image.NewNRGBA(image.Rect(0, 0, 8, 8)), i)
	}

	var got []int
	s.OnSelectionChanged = func(index int) {
		assert.Equal(t, index, s.SelectedIndex(), "Selection is updated before the callback")
		got = append(got, index)
	}

	assert.Equal(t, 0, s.SelectedIndex())
	assert.True(t, s.tiles[0].highlighted())

	test.Tap(s.tiles[2])
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 2, s.SelectedIndex())
	assert.False(t, s.tiles[0].highlighted())
	assert.True(t, s.tiles[2].highlighted())

	test.Tap(s.tiles[1])
	assert.Equal(t, []int{2, 1}, got)
}

func TestThumbnailStrip_Select(t *testing.T) {
	test.NewTempApp(t)
	s := NewThumbnailStrip(32)
	s.InsertThumbnail(image.NewNRGBA(image.Rect(0, 0, 8, 8)), 1)

	calls := 0
	s.OnSelectionChanged = func(int) { calls++ }

	s.Select(5)
	s.Select(-1)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, s.SelectedIndex())

	s.Select(1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.SelectedIndex())
	assert.True(t, s.tiles[1].highlighted())
}

func TestThumbnailStrip_Clear(t *testing.T) {
	test.NewTempApp(t)
	s := NewThumbnailStrip(32)
	s.InsertThumbnail(image.NewNRGBA(image.Rect(0, 0, 8, 8)), 3)
	s.Select(3)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Empty(t, s.row.Objects)

	s.InsertThumbnail(image.NewNRGBA(image.Rect(0, 0, 8, 8)), 0)
	assert.True(t, s.tiles[0].highlighted(), "A new first tile starts selected")
}
