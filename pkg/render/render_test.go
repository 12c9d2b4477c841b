package render

import (
	"context"
	"errors"
	"github.com/google/go-cmp/cmp"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/viewport"
	"image"
	"testing"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// quad is a 2x2 view straddling the set boundary. The bottom row lands on -2
// and -0.5, both bounded; the top-left pixel starts outside the bailout
// circle and the top-right leaves it after one update.
func quad(t *testing.T) viewport.Viewport {
	t.Helper()

	v, err := viewport.New(complex(-0.5, 0), 1.5, 2, 2, 50)
	if err != nil {
		t.Fatal(err)
	}

	return v
}

func TestRenderQuad(t *testing.T) {
	m, err := palette.ByName("grayscale")
	if err != nil {
		t.Fatal(err)
	}

	img, err := Render(context.Background(), quad(t), m)
	if err != nil {
		t.Fatal(err)
	}

	diff(t, image.Rect(0, 0, 2, 2), img.Bounds())

	diff(t, palette.Inside, img.RGBAAt(0, 1))
	diff(t, palette.Inside, img.RGBAAt(1, 1))

	fast, slow := img.RGBAAt(0, 0), img.RGBAAt(1, 0)
	if fast == palette.Inside || slow == palette.Inside {
		t.Fatalf("escaped pixels rendered as interior: %v, %v", fast, slow)
	}
	if fast.R <= slow.R {
		t.Errorf("faster escape not brighter: %d <= %d", fast.R, slow.R)
	}
}

func TestRenderDeterministic(t *testing.T) {
	v, err := viewport.FromZoom(complex(-0.743, 0.131), 50, 64, 48, 200)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	first, err := Render(ctx, v, nil)
	if err != nil {
		t.Fatal(err)
	}

	// One worker must agree with the parallel default, and a nil mapper with
	// the default palette.
	second, err := Renderer{Workers: 1}.Render(ctx, v, palette.Default())
	if err != nil {
		t.Fatal(err)
	}

	diff(t, first, second)
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := viewport.FromZoom(0, 1, 128, 128, 500)
	if err != nil {
		t.Fatal(err)
	}

	img, err := Render(ctx, v, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if img != nil {
		t.Error("canceled render still produced a buffer")
	}
}

func TestRenderInvalidViewport(t *testing.T) {
	img, err := Render(context.Background(), viewport.Viewport{}, nil)
	if !errors.Is(err, viewport.ErrInvalidViewport) {
		t.Errorf("err = %v, want ErrInvalidViewport", err)
	}
	if img != nil {
		t.Error("invalid viewport still produced a buffer")
	}
}

func TestRenderSupersample(t *testing.T) {
	// Deep inside the cardioid every subsample is interior, so supersampling
	// must reproduce the plain render exactly.
	v, err := viewport.New(complex(-0.5, 0), 1e-9, 4, 4, 100)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	plain, err := Render(ctx, v, nil)
	if err != nil {
		t.Fatal(err)
	}

	super, err := Renderer{Supersample: 2}.Render(ctx, v, nil)
	if err != nil {
		t.Fatal(err)
	}

	diff(t, image.Rect(0, 0, 4, 4), super.Bounds())
	diff(t, plain, super)
}
