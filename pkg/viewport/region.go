package viewport

import (
	"fmt"
	"math"
	"sort"
)

// A Region is an axis-aligned rectangle of the complex plane, a convenient
// way to name interesting neighborhoods without fixing a resolution.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Center returns the midpoint of the region.
func (r Region) Center() complex128 {
	return complex((r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2)
}

// FitRegion returns the smallest viewport of the given resolution whose
// view contains all of r, centered on r and letterboxed on the shorter
// axis to preserve the pixel aspect ratio.
func FitRegion(r Region, width, height, maxIterations int) (Viewport, error) {
	if r.XMax <= r.XMin || r.YMax <= r.YMin {
		return Viewport{}, fmt.Errorf("%w: empty region [%v, %v] x [%v, %v]",
			ErrInvalidViewport, r.XMin, r.XMax, r.YMin, r.YMax)
	}
	if width < 1 || height < 1 {
		return Viewport{}, fmt.Errorf("%w: resolution %dx%d", ErrInvalidViewport, width, height)
	}
	scale := math.Max((r.XMax-r.XMin)/float64(width), (r.YMax-r.YMin)/float64(height))
	return New(r.Center(), scale, width, height, maxIterations)
}

// Classic landmarks in the Mandelbrot set.
var (
	// SeahorseValley holds the dense filaments and repeating seahorse curls
	// between the two largest bulbs.
	SeahorseValley = Region{XMin: -0.8, XMax: -0.7, YMin: 0.05, YMax: 0.15}

	// ElephantValley shows the large bulb with trunk-like tendrils.
	ElephantValley = Region{XMin: -1.85, XMax: -1.75, YMin: -0.10, YMax: -0.02}

	// SpiralMinibrot is a small copy of the set with tight spiral arms.
	SpiralMinibrot = Region{XMin: -0.7435, XMax: -0.7420, YMin: 0.1310, YMax: 0.1325}

	// TripleSpiral is a threefold symmetric spiral structure.
	TripleSpiral = Region{XMin: -0.7480, XMax: -0.7450, YMin: 0.0950, YMax: 0.0980}

	// ValleyOfTheDragon contains deep, highly detailed spiral filaments.
	ValleyOfTheDragon = Region{XMin: -0.7400, XMax: -0.7350, YMin: 0.1800, YMax: 0.1850}

	// MinibrotInMiniSpiral is a self-similar copy inside a spiral arm.
	MinibrotInMiniSpiral = Region{XMin: -1.7390, XMax: -1.7375, YMin: -0.0235, YMax: -0.0220}
)

// Landmarks indexes the named regions for lookup by flag value.
var Landmarks = map[string]Region{
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// LandmarkNames returns the registered landmark names in sorted order.
func LandmarkNames() []string {
	names := make([]string, 0, len(Landmarks))
	for name := range Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
