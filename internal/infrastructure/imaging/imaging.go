package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooManyPixels     = errors.New("image dimensions exceed the pixel budget")
)

// MaxPixels bounds the decoded size of an upload, whatever its compressed size.
const MaxPixels = 40_000_000

// Box bounds a resized image. A zero Height only constrains the width.
type Box struct {
	Width  int
	Height int
}

var (
	UserPhotoBox   = Box{Width: 300}
	ClientPhotoBox = Box{Width: 800, Height: 600}
)

var contentTypes = map[string]string{
	"image/gif":   "image/gif",
	"image/jpeg":  "image/jpeg",
	"image/pjpeg": "image/jpeg",
	"image/tiff":  "image/tiff",
	"image/png":   "image/png",
}

// Extensions maps the accepted content types to file extensions.
var Extensions = map[string]string{
	"image/gif":   ".gif",
	"image/jpeg":  ".jpg",
	"image/pjpeg": ".jpg",
	"image/tiff":  ".tiff",
	"image/png":   ".png",
}

func IsSupported(contentType string) bool {
	_, ok := contentTypes[contentType]
	return ok
}

// Resize scales the image in data to fit box keeping its aspect ratio, and
// encodes it back in its original format. Images already inside the box are
// re-encoded unchanged in size. The header is checked against MaxPixels
// before any pixel data is decoded.
func Resize(data []byte, contentType string, box Box) ([]byte, string, error) {
	outType, ok := contentTypes[contentType]
	if !ok {
		return nil, "", ErrUnsupportedFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, "", ErrTooManyPixels
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	width, height := fit(src.Bounds().Dx(), src.Bounds().Dy(), box)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch outType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(&buf, dst)
	case "image/gif":
		err = gif.Encode(&buf, dst, nil)
	case "image/tiff":
		err = tiff.Encode(&buf, dst, nil)
	}
	if err != nil {
		return nil, "", fmt.Errorf("encoding image: %w", err)
	}

	return buf.Bytes(), outType, nil
}

func fit(width, height int, box Box) (int, int) {
	scale := 1.0
	if box.Width > 0 && width > box.Width {
		scale = float64(box.Width) / float64(width)
	}
	if box.Height > 0 && float64(height)*scale > float64(box.Height) {
		scale = float64(box.Height) / float64(height)
	}

	w := int(float64(width)*scale + 0.5)
	h := int(float64(height)*scale + 0.5)

	return max(w, 1), max(h, 1)
}
