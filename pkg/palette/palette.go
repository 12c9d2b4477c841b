// Package palette maps escape-time results to colors.
package palette

import (
	"errors"
	"fmt"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/willbeason/mandelbrot/pkg/mandel"
	"image/color"
	"math"
	"sort"
)

// ErrUnknown reports a palette name with no registered Mapper.
var ErrUnknown = errors.New("unknown palette")

// Inside is the color for points that never escape.
var Inside = color.RGBA{A: 0xff}

// A Mapper assigns a color to one evaluated point. Implementations must be
// pure so that renders of the same viewport are identical.
type Mapper interface {
	Color(r mandel.Result, maxIterations int) color.RGBA
}

// Func adapts a plain function to the Mapper interface.
type Func func(r mandel.Result, maxIterations int) color.RGBA

func (f Func) Color(r mandel.Result, maxIterations int) color.RGBA {
	return f(r, maxIterations)
}

// DefaultName is the palette used when none is requested.
const DefaultName = "smooth"

var mappers = map[string]Mapper{
	"smooth":    Func(smoothColor),
	"grayscale": Func(grayscaleColor),
	"banded":    Func(bandedColor),
}

// ByName looks up a registered Mapper. The error wraps ErrUnknown.
func ByName(name string) (Mapper, error) {
	m, found := mappers[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	return m, nil
}

// Names lists the registered palettes in lexical order.
func Names() []string {
	names := make([]string, 0, len(mappers))
	for name := range mappers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Default returns the Mapper for DefaultName.
func Default() Mapper {
	m, err := ByName(DefaultName)
	if err != nil {
		panic(err)
	}

	return m
}

// smoothColor shades escaped points along an HSL sweep keyed to the
// fractional escape count, so neighboring iteration bands blend instead of
// forming hard rings. Hue wraps while luminance rises toward slow escapes.
func smoothColor(r mandel.Result, maxIterations int) color.RGBA {
	if !r.Escaped {
		return Inside
	}

	t := mandel.SmoothIterations(r) / float64(maxIterations)
	hue := 360 * math.Pow(math.Mod(t, 1), 0.7)
	lum := 0.5 * math.Pow(t, 0.3)

	cr, cg, cb := colorful.Hsl(hue, 1, lum).Clamped().RGB255()

	return color.RGBA{R: cr, G: cg, B: cb, A: 0xff}
}

// grayscaleColor maps fast escapes to bright values and slow escapes to dark
// ones. Brightness never reaches zero for an escaped point, so the interior
// stays visually distinct.
func grayscaleColor(r mandel.Result, maxIterations int) color.RGBA {
	if !r.Escaped {
		return Inside
	}

	t := escapeFraction(r, maxIterations)
	v := uint8(1 + math.Round(254*(1-t)))

	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

const bandCount = 16

// bandedColor is the grayscale ramp quantized into discrete steps, giving the
// classic hard iteration bands.
func bandedColor(r mandel.Result, maxIterations int) color.RGBA {
	if !r.Escaped {
		return Inside
	}

	t := float64(r.Iterations) / float64(maxIterations)
	step := math.Floor(t*bandCount) / bandCount

	v := uint8(math.Round(255 * (1 - step)))

	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// escapeFraction normalizes the fractional escape count to [0, 1].
func escapeFraction(r mandel.Result, maxIterations int) float64 {
	t := mandel.SmoothIterations(r) / float64(maxIterations)
	if t < 0 {
		return 0
	}

	if t > 1 {
		return 1
	}

	return t
}
