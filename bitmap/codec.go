package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	"image/png"

	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// ErrDecode is returned when image data is missing or in an unknown format.
var ErrDecode = errors.New("bitmap: cannot decode image")

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP data and returns the
// pixels and the format name.
func Decode(data []byte) (*Pixmap, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty data", ErrDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return FromImage(img), format, nil
}

// DecodeConfig returns the dimensions of encoded image data.
func DecodeConfig(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}

// EncodePNG encodes p as PNG.
func EncodePNG(p *Pixmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.ToImage()); err != nil {
		return nil, fmt.Errorf("bitmap: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
