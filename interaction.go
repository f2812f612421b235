package ui

import (
	"fmt"
	"github.com/Yeicor/orbit-ui/internal"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"image/color"
	"strings"
)

var defaultFont font.Face = basicfont.Face7x13

// inputEvents are the controller events produced by one poll of the devices
type inputEvents struct {
	wheel              bool
	wheelDeltaY        float64 // Browser-style: pixels, positive scrolls down
	pointer            bool
	pointerX, pointerY float64
}

// inputTracker converts polled device state into events, remembering what was already reported
type inputTracker struct {
	pixelsPerNotch float64
	cursor         [2]int
	cursorSeen     bool
}

// events converts wheel notches (ebiten's yoff, positive scrolling up) and the cursor position
func (t *inputTracker) events(yoff float64, cx, cy int) inputEvents {
	var ev inputEvents
	if yoff != 0 {
		ev.wheel, ev.wheelDeltaY = true, -yoff*t.pixelsPerNotch
	}
	// Only on movement, like pointer move events
	if cursor := [2]int{cx, cy}; !t.cursorSeen || cursor != t.cursor {
		t.cursor, t.cursorSeen = cursor, true
		ev.pointer, ev.pointerX, ev.pointerY = true, float64(cx), float64(cy)
	}
	return ev
}

// onUpdateInputs handles inputs
func (r *Renderer) onUpdateInputs() {
	r.onUpdateKeys(inpututil.IsKeyJustPressed)
	_, wheelUpDown := ebiten.Wheel()
	cx, cy := ebiten.CursorPosition()
	if tX, tY := ebiten.TouchPosition(0); tX != 0 || tY != 0 { // Override cursor with touch if available
		cx, cy = tX, tY
	}
	r.applyInputs(r.input.events(wheelUpDown, cx, cy))
}

func (r *Renderer) applyInputs(ev inputEvents) {
	if ev.wheel {
		r.Wheel(ev.wheelDeltaY)
	}
	if ev.pointer {
		r.PointerMove(ev.pointerX, ev.pointerY)
	}
}

// onUpdateKeys applies the keyboard shortcuts, justPressed reports keys pressed on this tick
func (r *Renderer) onUpdateKeys(justPressed func(key ebiten.Key) bool) {
	if justPressed(ebiten.KeyKPAdd) {
		r.viewport.SetResInv(r.viewport.State().ResInv / 2)
	}
	if justPressed(ebiten.KeyKPSubtract) {
		r.viewport.SetResInv(r.viewport.State().ResInv * 2)
	}
	// Color
	if justPressed(ebiten.KeyC) {
		r.colorMode = (r.colorMode + 1) % colorModes
	}
	if justPressed(ebiten.KeyR) {
		r.controller.Reset()
	}
}

// hudCache avoids walking the material fields every frame.
type hudCache struct {
	material Material
	lines    string
}

func (h *hudCache) materialLines(m Material) string {
	if h.lines != "" && h.material == m {
		return h.lines
	}
	fields, err := internal.ReflectFields(&m)
	if err != nil {
		return "material: " + err.Error()
	}
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString("\n")
		sb.WriteString(f.String())
	}
	h.material, h.lines = m, sb.String()
	return h.lines
}

// drawUI draws the current state and controls
func (r *Renderer) drawUI(screen *ebiten.Image) {
	s := r.controller.Snapshot()
	vp := r.viewport.State()
	surfaceW, surfaceH := r.viewport.SurfaceSize()
	msg := fmt.Sprintf("TPS: %0.2f/%d\nRender: %dx%d (density %.2f)\nResolution: %.2f [+/-]\nColor: %d [C]\nReset [R]\n"+
		"Rotation: %.3f\nSpeed: %.5f (%d ticks to rest) [MouseWheel]\nCursor: %.2f, %.2f [Mouse]",
		ebiten.ActualTPS(), ebiten.TPS(), surfaceW, surfaceH, vp.PixelDensity, 1/float64(vp.ResInv), r.colorMode,
		s.Orbit.Rotation, s.Orbit.AngularSpeed, internal.DecayTicks(s.Orbit.AngularSpeed, 1e-5),
		s.Cursor.X, s.Cursor.Y)
	msg += r.hud.materialLines(r.tuning.current())
	boundString := text.BoundString(defaultFont, msg)
	drawDefaultTextWithShadow(screen, msg, 5, screen.Bounds().Dy()-boundString.Size().Y+10, color.RGBA{G: 255, A: 255})
}

func drawDefaultTextWithShadow(screen *ebiten.Image, msg string, x, y int, c color.Color) {
	text.Draw(screen, msg, defaultFont, x+1, y+1, color.RGBA{A: 255})
	text.Draw(screen, msg, defaultFont, x, y, c)
}
