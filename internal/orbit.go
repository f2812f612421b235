package internal

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"math"
)

const (
	WheelGain    = 0.0002 // Angular speed added per unit of browser-style wheel deltaY
	Decay        = 0.9    // Per-tick multiplier applied to the angular speed
	SelfSpinRate = 0.1    // Self rotation of each body (radians per second, on X and Y)
	CameraGain   = 10     // Camera offset per unit of cursor per second of frame delta
	OrbitRadius  = 4.
)

var (
	// OrbitOrigin is the fixed point all bodies circle around on the XZ plane.
	OrbitOrigin = v3.Vec{X: 3.5, Y: 0, Z: -3}
	// CameraHome is the camera position before any cursor input.
	CameraHome = v3.Vec{X: 0, Y: 0, Z: 6}
	// InitialPositions are the body positions before the first tick.
	InitialPositions = [NumBodies]v3.Vec{{X: 2}, {X: -1}, {X: 2, Z: -6}, {X: 5, Z: 3}}
)

// PhaseLayout selects the angular offsets of the bodies on the shared orbit.
type PhaseLayout int

const (
	// PhasesUniform spaces the bodies a quarter turn apart on both axes.
	PhasesUniform PhaseLayout = iota
	// PhasesLegacy uses 0.75π as the Z offset of the last two bodies (instead of π and 1.5π),
	// so they trace ellipses instead of the shared circle. Kept for scenes tuned with it.
	PhasesLegacy
)

// Phases returns the X (cos) and Z (sin) phase offsets for each body.
func (l PhaseLayout) Phases() (x, z [NumBodies]float64) {
	x = [NumBodies]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	z = x
	if l == PhasesLegacy {
		z[2] = math.Pi * 1.5 / 2
		z[3] = 3. / 2 * math.Pi / 2
	}
	return x, z
}

// OrbitConfig configures an OrbitController.
type OrbitConfig struct {
	Phases PhaseLayout
	// MaxAngularSpeed bounds |AngularSpeed| after each wheel event. 0 leaves it unbounded.
	MaxAngularSpeed float64
}

// OrbitController turns wheel and pointer events into per-frame body and camera transforms.
// It is not safe for concurrent use: every method must run on the frame thread.
type OrbitController struct {
	cfg   OrbitConfig
	state ControllerState
}

// NewOrbitController builds a controller with the bodies at their initial positions.
func NewOrbitController(cfg OrbitConfig) *OrbitController {
	c := &OrbitController{cfg: cfg}
	c.Reset()
	return c
}

// Reset restores the startup state (no rotation, no speed, centered cursor).
func (c *OrbitController) Reset() {
	phasesX, phasesZ := c.cfg.Phases.Phases()
	c.state = ControllerState{Camera: CameraState{Position: CameraHome}}
	for i := range c.state.Bodies {
		c.state.Bodies[i] = OrbitBody{
			Index:    i,
			PhaseX:   phasesX[i],
			PhaseZ:   phasesZ[i],
			Height:   InitialPositions[i].Y,
			Position: InitialPositions[i],
		}
	}
}

// OnWheel accumulates angular speed from a browser-style wheel delta (positive scrolls down).
func (c *OrbitController) OnWheel(deltaY float64) {
	c.state.Orbit.AngularSpeed += deltaY * WheelGain
	if limit := c.cfg.MaxAngularSpeed; limit > 0 {
		c.state.Orbit.AngularSpeed = math.Max(-limit, math.Min(limit, c.state.Orbit.AngularSpeed))
	}
}

// OnPointerMove maps a pointer position inside a viewport of the given size to [-0.5, 0.5].
func (c *OrbitController) OnPointerMove(clientX, clientY, viewportWidth, viewportHeight float64) {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return
	}
	c.state.Cursor.X = clientX/viewportWidth - 0.5
	c.state.Cursor.Y = clientY/viewportHeight - 0.5
}

// Tick advances the animation by one frame that took dt seconds.
//
// The orbit advances and decays per frame, ignoring dt, while the self rotation and camera offset
// are proportional to dt. Both rules are part of the observable behavior: a faster display spins
// the orbit faster and makes the parallax offset smaller.
func (c *OrbitController) Tick(dt float64) {
	s := &c.state
	s.Orbit.Rotation += s.Orbit.AngularSpeed
	s.Orbit.AngularSpeed *= Decay

	for i := range s.Bodies {
		b := &s.Bodies[i]
		b.Position = v3.Vec{
			X: OrbitOrigin.X + OrbitRadius*math.Cos(s.Orbit.Rotation+b.PhaseX),
			Y: b.Height,
			Z: OrbitOrigin.Z + OrbitRadius*math.Sin(s.Orbit.Rotation+b.PhaseZ),
		}
		b.SelfRotation = b.SelfRotation.Add(v2.Vec{X: SelfSpinRate * dt, Y: SelfSpinRate * dt})
	}

	s.Camera.Position.X = s.Cursor.X * dt * CameraGain
	s.Camera.Position.Y = -s.Cursor.Y * dt * CameraGain
	s.Frames++
}

// Orbit returns the current angular state.
func (c *OrbitController) Orbit() OrbitState {
	return c.state.Orbit
}

// Cursor returns the last normalized pointer position.
func (c *OrbitController) Cursor() CursorState {
	return c.state.Cursor
}

// Body returns a copy of body i.
func (c *OrbitController) Body(i int) OrbitBody {
	return c.state.Bodies[i]
}

// Camera returns the camera transform computed by the last tick.
func (c *OrbitController) Camera() CameraState {
	return c.state.Camera
}

// Snapshot returns an independent copy of the whole controller state.
func (c *OrbitController) Snapshot() *ControllerState {
	s := c.state // Only values, a shallow copy is enough
	return &s
}

// DecayTicks returns the number of ticks without input needed for |speed| to drop below eps,
// or -1 when eps <= 0 (the speed never reaches zero) or speed is not finite.
func DecayTicks(speed, eps float64) int {
	if eps <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return -1
	}
	speed = math.Abs(speed)
	if speed < eps {
		return 0
	}
	return int(math.Floor(math.Log(eps/speed)/math.Log(Decay))) + 1
}
