package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/render"
	"github.com/willbeason/mandelbrot/pkg/viewport"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"
)

var (
	centerReal  float64
	centerImag  float64
	zoom        float64
	width       int
	height      int
	iterations  int
	paletteName string
	landmark    string
	outPath     string
	workers     int
	supersample int
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a view of the Mandelbrot set to a PNG",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().Float64Var(&centerReal, "real", -0.4, "real part of the view center")
	cmd.Flags().Float64Var(&centerImag, "imag", 0, "imaginary part of the view center")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom level; 1 spans four plane units across the width")
	cmd.Flags().IntVar(&width, "width", 800, "output width in pixels")
	cmd.Flags().IntVar(&height, "height", 800, "output height in pixels")
	cmd.Flags().IntVar(&iterations, "iterations", 500, "iteration cap per pixel")
	cmd.Flags().StringVar(&paletteName, "palette", palette.DefaultName,
		"palette: "+strings.Join(palette.Names(), ", "))
	cmd.Flags().StringVar(&landmark, "landmark", "",
		"frame a named region instead of center and zoom: "+strings.Join(viewport.LandmarkNames(), ", "))
	cmd.Flags().StringVar(&outPath, "out", "", "output file; empty picks a timestamped name")
	cmd.Flags().IntVar(&workers, "workers", 0, "rendering goroutines; 0 means one per CPU")
	cmd.Flags().IntVar(&supersample, "supersample", 1, "render at this multiple of the output size and scale down")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	m, err := palette.ByName(paletteName)
	if err != nil {
		return err
	}

	vp, err := buildViewport()
	if err != nil {
		return err
	}

	start := time.Now()

	img, err := render.Renderer{Workers: workers, Supersample: supersample}.Render(cmd.Context(), vp, m)
	if err != nil {
		return err
	}

	log.Printf("rendered %dx%d at zoom %.4g in %v", vp.Width, vp.Height, vp.Zoom(), time.Since(start))

	path := outPath
	if path == "" {
		path = render.DefaultFilename(time.Now())
	}

	if err = render.Export(path, img); err != nil {
		return err
	}

	log.Printf("wrote %s", path)

	return nil
}

func buildViewport() (viewport.Viewport, error) {
	if landmark != "" {
		region, found := viewport.Landmarks[landmark]
		if !found {
			return viewport.Viewport{}, fmt.Errorf("unknown landmark %q; have %s",
				landmark, strings.Join(viewport.LandmarkNames(), ", "))
		}

		return viewport.FitRegion(region, width, height, iterations)
	}

	return viewport.FromZoom(complex(centerReal, centerImag), zoom, width, height, iterations)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
