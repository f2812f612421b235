package internal

import "math"

const (
	CameraFovY = 35. // degrees
	CameraNear = 0.1
	CameraFar  = 100.
)

// ViewportManager owns the projection parameters and the output surface size.
type ViewportManager struct {
	state      ViewportState
	projection Projection
}

// NewViewportManager builds a 1x1 viewport that renders every pixel (resInv < 1 means 1).
func NewViewportManager(resInv int) *ViewportManager {
	if resInv < 1 {
		resInv = 1
	}
	return &ViewportManager{
		state:      ViewportState{Width: 1, Height: 1, PixelDensity: 1, Aspect: 1, ResInv: resInv},
		projection: Projection{FovY: CameraFovY, Aspect: 1, Near: CameraNear, Far: CameraFar},
	}
}

// OnResize applies a new window size. A degenerate size is ignored (the previous projection is
// kept) and reported through the returned bool.
func (v *ViewportManager) OnResize(width, height int, devicePixelRatioHint float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.state.Width, v.state.Height = width, height
	v.state.Aspect = float64(width) / float64(height)
	v.state.PixelDensity = pixelDensity(devicePixelRatioHint)
	v.projection = Projection{FovY: CameraFovY, Aspect: v.state.Aspect, Near: CameraNear, Far: CameraFar}
	return true
}

// pixelDensity never upscales beyond one surface pixel per logical pixel.
func pixelDensity(hint float64) float64 {
	if hint <= 0 || math.IsNaN(hint) {
		return 1
	}
	return math.Min(1, hint)
}

// SetResInv changes the render downscale factor, clamped to [1, 64].
func (v *ViewportManager) SetResInv(resInv int) {
	v.state.ResInv = max(1, min(64, resInv))
}

// SurfaceSize is the size of the rendered image, always at least 1x1.
func (v *ViewportManager) SurfaceSize() (int, int) {
	scale := v.state.PixelDensity / float64(v.state.ResInv)
	w := int(math.Floor(float64(v.state.Width) * scale))
	h := int(math.Floor(float64(v.state.Height) * scale))
	return max(1, w), max(1, h)
}

// Projection returns the current perspective parameters.
func (v *ViewportManager) Projection() Projection {
	return v.projection
}

// State returns the current viewport description.
func (v *ViewportManager) State() ViewportState {
	return v.state
}
