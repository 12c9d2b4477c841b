package main

import (
	"context"
	"fmt"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/mandel"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/render"
	"github.com/willbeason/mandelbrot/pkg/viewport"
	"image"
	"image/color"
	"math"
	"os"
	"strings"
	"time"
)

const (
	screenWidth  = 800
	screenHeight = 800

	minIterations  = 100
	maxIterations  = 5000
	iterationStep  = 100
	wheelZoomStep  = 1.1
	keyZoomStep    = 2.0
	panStepPixels  = 100
	orbitTraceCap  = 500
)

var (
	centerReal  float64
	centerImag  float64
	zoom        float64
	iterations  int
	paletteName string
	landmark    string
)

// frame is one completed render and the view and palette it shows.
type frame struct {
	view viewport.Viewport
	name string
	img  *image.RGBA
}

// Game drives the interactive explorer. The wanted view changes on input;
// renders run in background goroutines and completed frames arrive on a
// channel, so the UI never blocks on pixel math.
type Game struct {
	view     viewport.Viewport // what the user asked for
	kicked   viewport.Viewport // last view sent to a renderer
	rendered viewport.Viewport // what the texture currently shows

	mapper      palette.Mapper
	paletteName string

	texture *ebiten.Image
	last    *image.RGBA
	frames  chan frame
	cancel  context.CancelFunc

	showOrbit bool
	note      string
}

func newGame(vp viewport.Viewport, name string, m palette.Mapper) *Game {
	return &Game{
		view:        vp,
		mapper:      m,
		paletteName: name,
		texture:     ebiten.NewImage(vp.Width, vp.Height),
		frames:      make(chan frame, 4),
	}
}

func (g *Game) Update() error {
	g.drainFrames()

	if err := g.handleInput(); err != nil {
		return err
	}

	if g.view != g.kicked {
		g.kick()
	}

	return nil
}

// drainFrames applies every completed render. Frames carry the view they
// were rendered from, so a stale frame is overwritten as soon as the current
// one lands.
func (g *Game) drainFrames() {
	for {
		select {
		case f := <-g.frames:
			g.texture.WritePixels(f.img.Pix)
			g.last = f.img
			g.rendered = f.view
		default:
			return
		}
	}
}

// kick cancels any in-flight render and starts one for the current view.
func (g *Game) kick() {
	if g.cancel != nil {
		g.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.kicked = g.view

	vp, m := g.view, g.mapper
	go func() {
		img, err := render.Render(ctx, vp, m)
		if err != nil {
			// Canceled; a newer render owns the screen now.
			return
		}

		g.frames <- frame{view: vp, img: img}
	}()
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if _, scrollY := ebiten.Wheel(); scrollY != 0 {
		cx, cy := ebiten.CursorPosition()
		factor := math.Pow(wheelZoomStep, scrollY)
		g.view = g.view.ZoomAt(g.view.PixelToComplex(cx, cy), factor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		if cx >= 0 && cx < g.view.Width && cy >= 0 && cy < g.view.Height {
			g.view = g.view.Recenter(g.view.PixelToComplex(cx, cy))
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.view = g.view.Pan(-panStepPixels, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.view = g.view.Pan(panStepPixels, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.view = g.view.Pan(0, -panStepPixels)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.view = g.view.Pan(0, panStepPixels)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.view = g.view.ZoomAt(g.view.Center, keyZoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.view = g.view.ZoomAt(g.view.Center, 1/keyZoomStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) {
		g.setIterations(g.view.MaxIterations + iterationStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) {
		g.setIterations(g.view.MaxIterations - iterationStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.cyclePalette()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.showOrbit = !g.showOrbit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.view = startView()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) && g.last != nil {
		path := render.DefaultFilename(time.Now())
		if err := render.Export(path, g.last); err != nil {
			g.note = err.Error()
		} else {
			g.note = "wrote " + path
		}
	}

	return nil
}

func (g *Game) setIterations(n int) {
	if n < minIterations {
		n = minIterations
	}
	if n > maxIterations {
		n = maxIterations
	}
	g.view.MaxIterations = n
}

// cyclePalette advances to the next registered palette and forces a
// re-render by perturbing the kicked view marker.
func (g *Game) cyclePalette() {
	names := palette.Names()
	for i, name := range names {
		if name != g.paletteName {
			continue
		}

		next := names[(i+1)%len(names)]
		m, err := palette.ByName(next)
		if err != nil {
			return
		}

		g.paletteName = next
		g.mapper = m
		g.kicked = viewport.Viewport{}

		return
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.texture, &ebiten.DrawImageOptions{})

	if g.showOrbit {
		g.drawOrbit(screen)
	}

	status := "ready"
	if g.view != g.rendered {
		status = "rendering..."
	}

	hud := fmt.Sprintf("center (%.10g, %.10g)  zoom %.4g\niterations %d  palette %s  %s",
		real(g.view.Center), imag(g.view.Center), g.view.Zoom(),
		g.view.MaxIterations, g.paletteName, status)
	if g.note != "" {
		hud += "\n" + g.note
	}
	hud += "\nclick recenter / wheel zoom / arrows pan / +- zoom / [] iterations / p palette / o orbit / r reset / s save / q quit"

	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

var (
	orbitLine  = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	orbitDot   = color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	orbitStart = color.RGBA{R: 0xff, A: 0xff}
	orbitEnd   = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
)

// drawOrbit traces the orbit of the point under the cursor. Early points
// draw at full strength and later ones fade, with the seed in red and the
// final point in orange.
func (g *Game) drawOrbit(screen *ebiten.Image) {
	cx, cy := ebiten.CursorPosition()
	if cx < 0 || cx >= g.view.Width || cy < 0 || cy >= g.view.Height {
		return
	}

	limit := g.view.MaxIterations
	if limit > orbitTraceCap {
		limit = orbitTraceCap
	}

	r := mandel.Evaluate(g.view.PixelToComplex(cx, cy), limit, true)

	total := len(r.Orbit)
	prevX, prevY := 0, 0
	for i, z := range r.Orbit {
		x, y := g.view.ComplexToPixel(z)

		a := 1 - float64(i)/float64(total)
		if a < 0.3 {
			a = 0.3
		}

		if i > 0 {
			vector.StrokeLine(screen,
				float32(prevX), float32(prevY), float32(x), float32(y),
				1, fade(orbitLine, a), true)
		}

		dot := orbitDot
		switch i {
		case 0:
			dot = orbitStart
		case total - 1:
			dot = orbitEnd
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), 2, fade(dot, a), true)

		prevX, prevY = x, y
	}
}

// fade scales a color toward transparent. Draw colors are alpha-premultiplied,
// so every channel scales together.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the Mandelbrot set interactively",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().Float64Var(&centerReal, "real", -0.4, "real part of the starting center")
	cmd.Flags().Float64Var(&centerImag, "imag", 0, "imaginary part of the starting center")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "starting zoom level")
	cmd.Flags().IntVar(&iterations, "iterations", 500, "starting iteration cap")
	cmd.Flags().StringVar(&paletteName, "palette", palette.DefaultName,
		"palette: "+strings.Join(palette.Names(), ", "))
	cmd.Flags().StringVar(&landmark, "landmark", "",
		"start at a named region: "+strings.Join(viewport.LandmarkNames(), ", "))

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

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Mandelbrot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(newGame(vp, paletteName, m))
}

// startView is the view the R key resets to.
func startView() viewport.Viewport {
	return viewport.Default()
}

func buildViewport() (viewport.Viewport, error) {
	if landmark != "" {
		region, found := viewport.Landmarks[landmark]
		if !found {
			return viewport.Viewport{}, fmt.Errorf("unknown landmark %q; have %s",
				landmark, strings.Join(viewport.LandmarkNames(), ", "))
		}

		return viewport.FitRegion(region, screenWidth, screenHeight, iterations)
	}

	return viewport.FromZoom(complex(centerReal, centerImag), zoom, screenWidth, screenHeight, iterations)
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
