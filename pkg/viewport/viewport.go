// Package viewport maps between a pixel grid and coordinates on the complex
// plane.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// BaseWidth is the plane width covered at a zoom level of 1: four units
// spans the whole set with room to spare.
const BaseWidth = 4.0

// ErrInvalidViewport reports a viewport that cannot be rendered: a
// non-positive scale, an empty resolution, or a zero iteration cap.
var ErrInvalidViewport = errors.New("invalid viewport")

// A Viewport frames a Width x Height pixel grid onto the complex plane.
//
// It is a plain value: renders take a copy as an immutable snapshot, so UI
// code may keep mutating its own Viewport while a render is in flight.
type Viewport struct {
	// Center is the plane point under the middle of the grid.
	Center complex128

	// Scale is the plane distance covered by one pixel.
	Scale float64

	// Width and Height are the grid resolution in pixels.
	Width, Height int

	// MaxIterations caps the escape-time evaluation of every point in view.
	MaxIterations int
}

// New returns a validated viewport with the given scale in plane units per
// pixel.
func New(center complex128, scale float64, width, height, maxIterations int) (Viewport, error) {
	v := Viewport{
		Center:        center,
		Scale:         scale,
		Width:         width,
		Height:        height,
		MaxIterations: maxIterations,
	}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// FromZoom returns a validated viewport using zoom-level semantics: a zoom
// of 1 spans BaseWidth plane units across the grid's width, and larger
// values zoom in. Height follows from Width's scale, preserving the aspect
// ratio.
func FromZoom(center complex128, zoom float64, width, height, maxIterations int) (Viewport, error) {
	if !(zoom > 0) {
		return Viewport{}, fmt.Errorf("%w: zoom %v", ErrInvalidViewport, zoom)
	}
	if width < 1 {
		return Viewport{}, fmt.Errorf("%w: width %d", ErrInvalidViewport, width)
	}
	return New(center, BaseWidth/(zoom*float64(width)), width, height, maxIterations)
}

// Default frames the full set: centered slightly left of the origin at
// zoom level 1.
func Default() Viewport {
	v, err := FromZoom(complex(-0.4, 0), 1, 800, 800, 500)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate reports whether the viewport's invariants hold. All returned
// errors wrap ErrInvalidViewport.
func (v Viewport) Validate() error {
	switch {
	case !(v.Scale > 0) || math.IsInf(v.Scale, 1): // also rejects NaN
		return fmt.Errorf("%w: scale %v", ErrInvalidViewport, v.Scale)
	case v.Width < 1 || v.Height < 1:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidViewport, v.Width, v.Height)
	case v.MaxIterations < 1:
		return fmt.Errorf("%w: iteration cap %d", ErrInvalidViewport, v.MaxIterations)
	}
	return nil
}

// Zoom returns the zoom level equivalent to the current scale, the inverse
// of FromZoom.
func (v Viewport) Zoom() float64 {
	return BaseWidth / (v.Scale * float64(v.Width))
}

// PixelToComplex maps a pixel to its plane coordinate. Screen rows grow
// downward while the imaginary axis grows upward, so y is inverted.
//
// x must be in [0, Width) and y in [0, Height); out-of-range coordinates
// are a caller bug, not a runtime condition.
func (v Viewport) PixelToComplex(x, y int) complex128 {
	return v.Center + complex(
		(float64(x)-float64(v.Width)/2)*v.Scale,
		(float64(v.Height)/2-float64(y))*v.Scale,
	)
}

// ComplexToPixel maps a plane coordinate back to the nearest pixel, the
// inverse of PixelToComplex up to rounding. Points outside the view map to
// coordinates outside [0, Width) x [0, Height).
func (v Viewport) ComplexToPixel(c complex128) (x, y int) {
	x = int(math.Round((real(c)-real(v.Center))/v.Scale + float64(v.Width)/2))
	y = int(math.Round(float64(v.Height)/2 - (imag(c)-imag(v.Center))/v.Scale))
	return x, y
}

// Recenter returns a copy of the viewport looking at c. It never triggers
// recomputation; rendering the new view is the caller's move.
func (v Viewport) Recenter(c complex128) Viewport {
	v.Center = c
	return v
}

// Pan returns a copy of the viewport shifted by a pixel delta in screen
// coordinates: positive dx looks further right, positive dy further down.
func (v Viewport) Pan(dx, dy int) Viewport {
	v.Center += complex(float64(dx)*v.Scale, -float64(dy)*v.Scale)
	return v
}

// ZoomAt returns a copy of the viewport rescaled by factor (> 1 zooms in)
// with the plane point c kept on the same pixel, so zooming toward a cursor
// holds the point under it still.
func (v Viewport) ZoomAt(c complex128, factor float64) Viewport {
	v.Scale /= factor
	v.Center = c + (v.Center-c)/complex(factor, 0)
	return v
}
