package wallpaper

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/slimroms/slimwallpaper/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_DecodeSource(t *testing.T) {
	d := newDecoder()

	img, err := d.decodeSource(context.Background(), bytes.NewReader(testPNG(t, 40, 30)))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())

	_, err = d.decodeSource(context.Background(), strings.NewReader("not an image"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.decodeSource(ctx, bytes.NewReader(testPNG(t, 40, 30)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecoder_DecodeSourceSniffsFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 48, 32)), nil))

	am := asset.NewManagerFS(fstest.MapFS{
		"wallpapers/photo.png": &fstest.MapFile{Data: buf.Bytes()},
	})
	rc, err := am.Open("photo")
	require.NoError(t, err)
	defer rc.Close()

	img, err := newDecoder().decodeSource(context.Background(), io.Reader(rc))
	require.NoError(t, err, "JPEG content under a .png name still decodes")
	assert.Equal(t, image.Rect(0, 0, 48, 32), img.Bounds())
}

func TestCoarseDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 200))

	out, err := coarseDownsample(context.Background(), src, 4)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())

	same, err := coarseDownsample(context.Background(), src, 1)
	require.NoError(t, err)
	assert.Same(t, src, same, "Factor 1 must not copy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = coarseDownsample(ctx, src, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoarseDownsample_SamplesSource(t *testing.T) {
	img, err := newDecoder().decodeSource(context.Background(), bytes.NewReader(testPNG(t, 256, 256)))
	require.NoError(t, err)

	out, err := coarseDownsample(context.Background(), img, 2)
	require.NoError(t, err)

	// testPNG stores x in red and y in green; sampling at factor 2 keeps that order.
	r0, g0, _, _ := out.At(0, 0).RGBA()
	r1, _, _, _ := out.At(100, 0).RGBA()
	_, g1, _, _ := out.At(0, 100).RGBA()
	assert.Less(t, r0, r1)
	assert.Less(t, g0, g1)
}

func TestDecoder_Thumbnail(t *testing.T) {
	d := newDecoder()
	src := image.NewNRGBA(image.Rect(0, 0, 1920, 1080))

	thumb, err := d.thumbnail(context.Background(), src, 75)
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 75)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 75)
	assert.Equal(t, 75, thumb.Bounds().Dx(), "Longest side reaches the bound")

	small := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	thumb, err = d.thumbnail(context.Background(), small, 75)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), thumb.Bounds(), "Small images are not upscaled")

	_, err = d.thumbnail(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 0)), 75)
	assert.Error(t, err)
}

func TestDecoder_Fit(t *testing.T) {
	d := newDecoder()
	src := image.NewNRGBA(image.Rect(0, 0, 1200, 400))

	out, err := d.fit(context.Background(), src, 160, 90)
	require.NoError(t, err)
	assert.Equal(t, 160, out.Bounds().Dx())
	assert.Equal(t, 90, out.Bounds().Dy())

	_, err = d.fit(context.Background(), src, 0, 90)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.fit(ctx, src, 160, 90)
	assert.ErrorIs(t, err, context.Canceled)
}
