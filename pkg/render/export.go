package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"
)

// ErrInvalidBuffer reports an image that cannot be exported.
var ErrInvalidBuffer = errors.New("invalid image buffer")

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := checkBuffer(img); err != nil {
		return err
	}

	return png.Encode(w, img)
}

// Export writes img to a PNG file at path. The buffer is checked before the
// file is created, so a bad buffer never leaves an empty file behind.
func Export(path string, img image.Image) error {
	if err := checkBuffer(img); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}

	if err = png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	return f.Close()
}

// DefaultFilename names an export after the wall clock, second resolution.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("mandelbrot-%s.png", now.Format("20060102150405"))
}

func checkBuffer(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: no image", ErrInvalidBuffer)
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBuffer, b.Dx(), b.Dy())
	}

	return nil
}
