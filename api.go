package ui

import (
	"context"
	"fmt"
	"github.com/Yeicor/orbit-ui/internal"
	"github.com/hajimehoshi/ebiten/v2"
	"image"
	"log"
	"os/signal"
)

// Option configures a Renderer.
type Option = func(r *Renderer)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptLegacyPhases places the last two bodies with the uneven Z phase offsets (0.75π) the scene
// was first tuned with, instead of spacing all bodies a quarter turn apart.
func OptLegacyPhases(legacy bool) Option {
	return func(r *Renderer) {
		if legacy {
			r.orbitCfg.Phases = internal.PhasesLegacy
		} else {
			r.orbitCfg.Phases = internal.PhasesUniform
		}
	}
}

// OptMaxAngularSpeed bounds the angular speed accumulated by the wheel (radians per frame).
// The default (0) leaves it unbounded.
func OptMaxAngularSpeed(limit float64) Option {
	return func(r *Renderer) {
		r.orbitCfg.MaxAngularSpeed = limit
	}
}

// OptMaxFrameDelta caps the time step (seconds) seen by a single frame, so a long pause does not
// produce a huge camera offset. The default (0) passes the measured time through.
func OptMaxFrameDelta(seconds float64) Option {
	return func(r *Renderer) {
		r.maxDelta = seconds
	}
}

// OptWheelPixelsPerNotch sets how many pixels of scroll a wheel notch is worth.
func OptWheelPixelsPerNotch(pixels float64) Option {
	return func(r *Renderer) {
		r.wheelPixelsPerNotch = pixels
	}
}

// OptResInv sets the number of screen pixels for each rendered pixel (on each axis).
// Higher values render faster at a lower quality.
func OptResInv(resInv int) Option {
	return func(r *Renderer) {
		r.resInv = resInv
	}
}

// OptHUD shows or hides the state overlay.
func OptHUD(show bool) Option {
	return func(r *Renderer) {
		r.drawHUD = show
	}
}

//-----------------------------------------------------------------------------
// RENDERER
//-----------------------------------------------------------------------------

// Renderer animates the orbiting bodies from wheel, cursor and resize input.
// All methods except Stop must be called from the goroutine that runs the frames.
type Renderer struct {
	// Options
	orbitCfg            internal.OrbitConfig
	maxDelta            float64
	wheelPixelsPerNotch float64
	resInv              int
	drawHUD             bool
	colorMode           int
	tuningFile          string
	// State
	controller *internal.OrbitController
	viewport   *internal.ViewportManager
	loop       *internal.FrameLoop
	scene      *scene3
	tuning     *tuning
	// Cached outputs
	cachedRender *image.NRGBA
	cachedFrame  *ebiten.Image
	hud          hudCache
	input        inputTracker
	windowSize   [2]int
}

// NewRenderer builds a renderer with the default scene, applying the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		wheelPixelsPerNotch: 100,
		resInv:              2,
		drawHUD:             true,
		scene:               newScene3(DefaultPresets),
		tuning:              newTuning(DefaultMaterial),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.controller = internal.NewOrbitController(r.orbitCfg)
	r.viewport = internal.NewViewportManager(r.resInv)
	r.loop = internal.NewFrameLoop(internal.NewClock(nil, r.maxDelta))
	r.input = inputTracker{pixelsPerNotch: r.wheelPixelsPerNotch}
	return r
}

// Run opens the window and animates the scene until the window is closed, Stop is called or the
// process is interrupted.
func (r *Renderer) Run() error {
	ctx, cancelFunc := signal.NotifyContext(context.Background(), signals()...)
	defer cancelFunc()
	if r.tuningFile != "" {
		if err := r.tuning.watch(ctx, r.tuningFile); err != nil {
			return err
		}
	}
	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	if err := ebiten.RunGame(rendererEbitenGame{r}); err != nil {
		return fmt.Errorf("%w: %v", ErrNoRenderTarget, err)
	}
	log.Println("[OrbitUI] Stopped after", r.controller.Snapshot().Frames, "frames")
	return nil
}

// Stop ends the animation after the current frame. It is safe to call from any goroutine.
func (r *Renderer) Stop() {
	r.loop.Stop()
}

// ErrStopped is returned by Frame once the renderer is stopped.
var ErrStopped = internal.ErrStopped

// Frame applies one animation step that took dt seconds (without reading any device input).
// It returns ErrStopped without animating after Stop.
func (r *Renderer) Frame(dt float64) error {
	return r.loop.Frame(func(_ float64) error { // Fixed step, the measured time is meaningless here
		r.controller.Tick(dt)
		return nil
	})
}

// Wheel feeds a browser-style wheel delta (pixels, positive scrolls down).
func (r *Renderer) Wheel(deltaY float64) {
	r.controller.OnWheel(deltaY)
}

// PointerMove feeds a cursor position in window pixels.
func (r *Renderer) PointerMove(x, y float64) {
	vp := r.viewport.State()
	r.controller.OnPointerMove(x, y, float64(vp.Width), float64(vp.Height))
}

// Resize feeds a new window size and device pixel ratio.
func (r *Renderer) Resize(width, height int, devicePixelRatio float64) {
	if !r.viewport.OnResize(width, height, devicePixelRatio) {
		log.Printf("[OrbitUI] Ignoring degenerate window size %dx%d", width, height)
	}
}

// State returns a copy of the animation state.
func (r *Renderer) State() *internal.ControllerState {
	return r.controller.Snapshot()
}

// RenderImage rasterizes the current state at the surface size. The returned image is reused by
// the next call.
func (r *Renderer) RenderImage() (*image.NRGBA, error) {
	w, h := r.viewport.SurfaceSize()
	img, err := r.scene.render(r.cachedRender, r.controller.Snapshot(), r.viewport.Projection(),
		w, h, r.tuning.current(), r.colorMode)
	if err != nil {
		return nil, err
	}
	r.cachedRender = img
	return img, nil
}
