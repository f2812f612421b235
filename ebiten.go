package ui

import (
	"errors"
	"github.com/Yeicor/orbit-ui/internal"
	"github.com/hajimehoshi/ebiten/v2"
)

// rendererEbitenGame hides the private ebiten implementation while behaving like a *Renderer internally
type rendererEbitenGame struct {
	*Renderer
}

func (r rendererEbitenGame) Update() error {
	err := r.loop.Frame(func(dt float64) error {
		r.onUpdateInputs()
		r.controller.Tick(dt)
		return nil
	})
	if errors.Is(err, internal.ErrStopped) {
		return ebiten.Termination
	}
	return err
}

func (r rendererEbitenGame) Draw(screen *ebiten.Image) {
	r.drawScene(screen)
	if r.drawHUD {
		r.drawUI(screen)
	}
}

func (r rendererEbitenGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	newWindowSize := [2]int{outsideWidth, outsideHeight}
	if r.windowSize != newWindowSize { // Layout runs every frame, only resize on changes
		r.windowSize = newWindowSize
		r.Resize(outsideWidth, outsideHeight, deviceScaleFactor(ebiten.Monitor()))
	}
	return max(1, outsideWidth), max(1, outsideHeight) // Use all available pixels, the scene is scaled up in Draw
}

// drawScene rasterizes the scene and scales it over the whole screen.
func (r rendererEbitenGame) drawScene(screen *ebiten.Image) {
	img, err := r.RenderImage()
	if err != nil {
		return // Nothing to show yet (the previous frame stays on screen)
	}
	size := img.Bounds().Size()
	if r.cachedFrame == nil || r.cachedFrame.Bounds().Size() != size {
		if r.cachedFrame != nil {
			r.cachedFrame.Deallocate()
		}
		r.cachedFrame = ebiten.NewImage(size.X, size.Y)
	}
	r.cachedFrame.WritePixels(img.Pix) // Opaque, so non-premultiplied alpha is the same
	drawOpts := &ebiten.DrawImageOptions{}
	screenSize := screen.Bounds().Size()
	drawOpts.GeoM.Scale(float64(screenSize.X)/float64(size.X), float64(screenSize.Y)/float64(size.Y))
	drawOpts.Filter = ebiten.FilterLinear
	screen.DrawImage(r.cachedFrame, drawOpts)
}

// deviceScaleFactor falls back to 1 while there is no monitor to ask.
func deviceScaleFactor(m *ebiten.MonitorType) float64 {
	if m == nil {
		return 1
	}
	return m.DeviceScaleFactor()
}
