// Package render rasterizes viewports of the Mandelbrot set.
package render

import (
	"context"
	"github.com/willbeason/mandelbrot/pkg/mandel"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/viewport"
	"golang.org/x/image/draw"
	"image"
	"runtime"
	"sync"
)

// A Renderer holds rasterization settings. The zero value renders with one
// worker per CPU and no supersampling.
type Renderer struct {
	// Workers caps the row-rendering goroutines. Zero means one per CPU.
	Workers int

	// Supersample renders at an integer multiple of the target resolution
	// and scales down, trading time for smoother edges. Values below two
	// disable it.
	Supersample int
}

// Render draws vp with default settings.
func Render(ctx context.Context, vp viewport.Viewport, m palette.Mapper) (*image.RGBA, error) {
	return Renderer{}.Render(ctx, vp, m)
}

// Render evaluates every pixel of vp and colors it with m, nil meaning the
// default palette. Rows are rendered concurrently; each result depends only
// on the viewport, so repeated renders are identical. If ctx is canceled
// mid-render the partial buffer is discarded and the context's error
// returned.
func (r Renderer) Render(ctx context.Context, vp viewport.Viewport, m palette.Mapper) (*image.RGBA, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	if m == nil {
		m = palette.Default()
	}

	if r.Supersample > 1 {
		return r.renderSupersampled(ctx, vp, m)
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))

	rows := make(chan int)
	go func() {
		defer close(rows)
		for y := 0; y < vp.Height; y++ {
			select {
			case rows <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	parallel := r.Workers
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}

	wg := sync.WaitGroup{}
	wg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			for y := range rows {
				renderRow(img, vp, m, y)
			}
			wg.Done()
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return img, nil
}

// renderSupersampled renders at Supersample times the target resolution and
// scales down with a Catmull-Rom kernel.
func (r Renderer) renderSupersampled(ctx context.Context, vp viewport.Viewport, m palette.Mapper) (*image.RGBA, error) {
	n := r.Supersample

	fine, err := viewport.New(
		vp.Center,
		vp.Scale/float64(n),
		vp.Width*n,
		vp.Height*n,
		vp.MaxIterations,
	)
	if err != nil {
		return nil, err
	}

	big, err := Renderer{Workers: r.Workers}.Render(ctx, fine, m)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	draw.CatmullRom.Scale(img, img.Bounds(), big, big.Bounds(), draw.Src, nil)

	return img, nil
}

// renderRow fills one row of img. Rows are disjoint, so workers never write
// the same pixel.
func renderRow(img *image.RGBA, vp viewport.Viewport, m palette.Mapper, y int) {
	for x := 0; x < vp.Width; x++ {
		res := mandel.Evaluate(vp.PixelToComplex(x, y), vp.MaxIterations, false)
		img.SetRGBA(x, y, m.Color(res, vp.MaxIterations))
	}
}
