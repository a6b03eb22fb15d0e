package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader is a grayscale PNG holding only an IHDR chunk, enough for
// image.DecodeConfig to report its dimensions.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		box           Box
		wantW, wantH  int
	}{
		{"user photo scaled to width", 1200, 900, UserPhotoBox, 300, 225},
		{"small user photo kept", 200, 100, UserPhotoBox, 200, 100},
		{"landscape client photo", 1600, 900, ClientPhotoBox, 800, 450},
		{"portrait client photo", 900, 1200, ClientPhotoBox, 450, 600},
		{"extreme ratio never zero", 10000, 1, UserPhotoBox, 300, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(tt.width, tt.height, tt.box)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestResize_PNG(t *testing.T) {
	out, contentType, err := Resize(encodePNG(t, 600, 400), "image/png", UserPhotoBox)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestResize_ProgressiveJPEGTypeIsReencodedAsJPEG(t *testing.T) {
	_, contentType, err := Resize(encodePNG(t, 10, 10), "image/pjpeg", ClientPhotoBox)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestResize_Errors(t *testing.T) {
	_, _, err := Resize([]byte("x"), "application/pdf", UserPhotoBox)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Resize([]byte("not an image"), "image/png", UserPhotoBox)
	assert.Error(t, err)
}

func TestResize_RejectsOversizedDimensions(t *testing.T) {
	data := pngHeader(12000, 12000)
	require.Less(t, len(data), 100)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 12000, cfg.Width)

	_, _, err = Resize(data, "image/png", UserPhotoBox)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestIsSupported(t *testing.T) {
	for _, ct := range []string{"image/gif", "image/jpeg", "image/pjpeg", "image/tiff", "image/png"} {
		assert.True(t, IsSupported(ct), ct)
	}
	assert.False(t, IsSupported("image/webp"))
}
