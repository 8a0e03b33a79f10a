package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Assets are addressed by a .png name, but the format is sniffed from the content,
// so a wallpaper stored as JPEG or WebP under that name still decodes.

const (
	// MaxSourcePixels rejects assets whose bounds alone would exhaust memory.
	MaxSourcePixels = 1 << 26

	// coarseBandRows is how many destination rows are produced between cancellation checks.
	coarseBandRows = 64
)

// decoder runs the two-stage decode-downsample: a cheap power-of-two nearest
// neighbour reduction followed by an exact resize.
type decoder struct {
	resampler   imaging.ResampleFilter
	thumbFilter resize.InterpolationFunction
}

func newDecoder() *decoder {
	return &decoder{
		resampler:   imaging.Lanczos,
		thumbFilter: resize.Lanczos3,
	}
}

// decodeSource fully decodes an asset in any registered format, honoring EXIF orientation.
func (d *decoder) decodeSource(ctx context.Context, r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	// Bounds-only pass
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image bounds: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("decoding image bounds: empty %s image", format)
	}
	if cfg.Width*cfg.Height > MaxSourcePixels {
		return nil, fmt.Errorf("decoding image: %dx%d %s image is too large", cfg.Width, cfg.Height, format)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return img, nil
}

// thumbnail shrinks src to fit in a maxDim square, keeping the aspect ratio.
func (d *decoder) thumbnail(ctx context.Context, src image.Image, maxDim int) (image.Image, error) {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tw, th := ThumbnailBounds(maxDim, w, h)
	if tw == 0 || th == 0 {
		return nil, fmt.Errorf("thumbnail of empty image")
	}

	coarse, err := coarseDownsample(ctx, src, CalculateScaleFactor(w, h, tw, th))
	if err != nil {
		return nil, err
	}

	thumb := resize.Thumbnail(uint(maxDim), uint(maxDim), coarse, d.thumbFilter)
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return thumb, nil
}

// fit scales and center-crops src to exactly width x height.
func (d *decoder) fit(ctx context.Context, src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	b := src.Bounds()
	coarse, err := coarseDownsample(ctx, src, CalculateScaleFactor(b.Dx(), b.Dy(), width, height))
	if err != nil {
		return nil, err
	}

	r := &resizer{resampler: d.resampler}
	fitted := r.fillWithContext(ctx, coarse, width, height)
	if fitted == nil {
		return nil, ctx.Err()
	}
	return fitted, nil
}

// coarseDownsample reduces src by factor with nearest neighbour sampling, in bands
// of rows so a cancelled context stops the work early.
func coarseDownsample(ctx context.Context, src image.Image, factor int) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if factor <= 1 {
		return src, nil
	}

	b := src.Bounds()
	dw, dh := max(1, b.Dx()/factor), max(1, b.Dy()/factor)
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	for y := 0; y < dh; y += coarseBandRows {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		yEnd := min(y+coarseBandRows, dh)
		srcTop := b.Min.Y + y*b.Dy()/dh
		srcBottom := b.Min.Y + yEnd*b.Dy()/dh
		draw.NearestNeighbor.Scale(dst, image.Rect(0, y, dw, yEnd), src,
			image.Rect(b.Min.X, srcTop, b.Max.X, srcBottom), draw.Src, nil)
	}
	return dst, nil
}

// resizer runs imaging operations that have no cancellation hook of their own.
type resizer struct {
	resampler imaging.ResampleFilter
}

// fillWithContext returns nil if ctx is cancelled before the fill completes.
func (r *resizer) fillWithContext(ctx context.Context, img image.Image, width, height int) image.Image {
	resultChan := make(chan image.Image, 1)

	go func() {
		resultChan <- imaging.Fill(img, width, height, imaging.Center, r.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil
	case result := <-resultChan:
		return result
	}
}

// checkContext reports the context's error without blocking.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
