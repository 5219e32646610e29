package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// Thumbnailer processes episode thumbnail images before they are saved
// next to the downloaded video.
//
// The station serves catalog thumbnails at whatever size the CDN has
// cached; Thumbnailer normalizes them:
//   - Resize to fit maximum dimensions, preserving aspect ratio
//   - Convert to JPEG for consistent format on disk
type Thumbnailer struct{}

// NewThumbnailer creates a new Thumbnailer.
func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{}
}

// Resize scales an image to fit within the given maximum dimensions,
// preserving aspect ratio, and returns it JPEG-encoded. Images already
// within bounds are re-encoded unchanged in size.
//
// The Catmull-Rom kernel is used for scaling.
func (t *Thumbnailer) Resize(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJPEG re-encodes an image as JPEG at 90% quality. PNG thumbnails
// come through here so every saved thumbnail carries a .jpg extension
// truthfully.
func (t *Thumbnailer) ToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
