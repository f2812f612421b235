package internal

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NumBodies is the number of meshes orbiting the shared origin.
const NumBodies = 4

// OrbitState is the angular state shared by every orbiting body.
type OrbitState struct {
	Rotation     float64 // Accumulated rotation (radians), wraps implicitly through cos/sin
	AngularSpeed float64 // Rotation added on the next tick (radians per frame), signed
}

// CursorState is the pointer position normalized to [-0.5, 0.5] on both axes.
type CursorState struct {
	X, Y float64
}

// OrbitBody is one of the four tracked meshes.
type OrbitBody struct {
	Index          int     // 0..NumBodies-1, also the mesh preset index
	PhaseX, PhaseZ float64 // Fixed angular offsets applied to the X (cos) and Z (sin) terms
	Height         float64 // Fixed Y coordinate, never written by the orbit logic
	Position       v3.Vec  // World position, rewritten every tick
	SelfRotation   v2.Vec  // Accumulated spin around the X and Y axes (radians)
}

// CameraState is the camera transform written by the controller.
type CameraState struct {
	Position v3.Vec
}

// ControllerState groups everything the controller owns, so it can be snapshotted as a whole.
type ControllerState struct {
	Orbit  OrbitState
	Cursor CursorState
	Bodies [NumBodies]OrbitBody
	Camera CameraState
	Frames uint64 // Number of ticks applied since the last reset
}

// ViewportState is the output surface description, only mutated on resize.
type ViewportState struct {
	Width, Height int     // Logical window size (pixels)
	PixelDensity  float64 // Effective device pixel ratio, never above 1
	Aspect        float64 // Width / Height
	ResInv        int     // Number of surface pixels for each rendered pixel (on each axis)
}

// Projection holds the perspective parameters of the single camera.
type Projection struct {
	FovY      float64 // Vertical field of view (degrees)
	Aspect    float64
	Near, Far float64
}
