package internal

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// angleOf returns the angle of a body on the orbit circle.
func angleOf(b OrbitBody) float64 {
	return math.Atan2(b.Position.Z-OrbitOrigin.Z, b.Position.X-OrbitOrigin.X)
}

func TestOrbitWheelScenario(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	c.OnWheel(1000)
	if got := c.Orbit().AngularSpeed; !approx(got, 0.2, eps) {
		t.Fatalf("expected angular speed 0.2 after the wheel event, got %f", got)
	}
	c.Tick(1. / 60)
	orbit := c.Orbit()
	if !approx(orbit.Rotation, 0.2, eps) {
		t.Fatalf("expected rotation 0.2, got %f", orbit.Rotation)
	}
	if !approx(orbit.AngularSpeed, 0.18, eps) {
		t.Fatalf("expected angular speed 0.18, got %f", orbit.AngularSpeed)
	}
	b := c.Body(0)
	wantX := OrbitOrigin.X + OrbitRadius*math.Cos(0.2)
	wantZ := OrbitOrigin.Z + OrbitRadius*math.Sin(0.2)
	if !approx(b.Position.X, wantX, eps) || !approx(b.Position.Z, wantZ, eps) {
		t.Fatalf("expected body 0 at (%f, %f), got (%f, %f)", wantX, wantZ, b.Position.X, b.Position.Z)
	}
}

func TestOrbitDecayConvergence(t *testing.T) {
	for _, speed0 := range []float64{0.2, -3, 1e-3, 42} {
		c := NewOrbitController(OrbitConfig{})
		c.OnWheel(speed0 / WheelGain)
		const target = 1e-6
		k := DecayTicks(speed0, target)
		if k <= 0 {
			t.Fatalf("expected a positive number of ticks for speed %f, got %d", speed0, k)
		}
		for i := 0; i < k; i++ {
			if math.Abs(c.Orbit().AngularSpeed) < target {
				t.Fatalf("speed %f dropped below %g after %d ticks, earlier than the predicted %d", speed0, target, i, k)
			}
			c.Tick(1. / 60)
		}
		got := c.Orbit().AngularSpeed
		if math.Abs(got) >= target {
			t.Fatalf("expected |speed| < %g after %d ticks, got %g", target, k, got)
		}
		if got == 0 || math.Signbit(got) != math.Signbit(speed0) {
			t.Fatalf("expected the speed to keep its sign and never reach zero, got %g", got)
		}
	}
}

func TestDecayTicksEdges(t *testing.T) {
	if got := DecayTicks(0, 1e-3); got != 0 {
		t.Fatalf("expected 0 ticks for a resting orbit, got %d", got)
	}
	if got := DecayTicks(1, 0); got != -1 {
		t.Fatalf("expected -1 for a zero threshold, got %d", got)
	}
	for _, speed := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := DecayTicks(speed, 1e-3); got != -1 {
			t.Fatalf("expected -1 for speed %f, got %d", speed, got)
		}
	}
}

func TestOrbitStillWithoutSpeed(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	c.Tick(0.016)
	var first [NumBodies]OrbitBody
	for i := range first {
		first[i] = c.Body(i)
	}
	for tick := 0; tick < 100; tick++ {
		c.Tick(0.016)
		for i := range first {
			b := c.Body(i)
			if b.Position.X != first[i].Position.X || b.Position.Z != first[i].Position.Z {
				t.Fatalf("body %d moved without angular speed at tick %d", i, tick)
			}
		}
	}
}

func TestOrbitPeriodicity(t *testing.T) {
	const steps = 400
	s := 2 * math.Pi / steps
	c := NewOrbitController(OrbitConfig{})
	c.Tick(0)
	var start [NumBodies]OrbitBody
	for i := range start {
		start[i] = c.Body(i)
	}
	for tick := 0; tick < steps; tick++ {
		// Keep the speed constant by topping up the decayed part
		c.OnWheel((s - c.Orbit().AngularSpeed) / WheelGain)
		c.Tick(0)
	}
	for i := range start {
		b := c.Body(i)
		if !approx(b.Position.X, start[i].Position.X, 1e-6) || !approx(b.Position.Z, start[i].Position.Z, 1e-6) {
			t.Fatalf("body %d did not return to (%f, %f) after a full turn: (%f, %f)",
				i, start[i].Position.X, start[i].Position.Z, b.Position.X, b.Position.Z)
		}
	}
}

func TestOrbitPhaseSeparation(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	c.OnWheel(12345)
	for tick := 0; tick < 50; tick++ {
		c.Tick(0.01)
		for i := 0; i < NumBodies; i++ {
			b := c.Body(i)
			r := math.Hypot(b.Position.X-OrbitOrigin.X, b.Position.Z-OrbitOrigin.Z)
			if !approx(r, OrbitRadius, 1e-9) {
				t.Fatalf("body %d left the orbit circle: radius %f", i, r)
			}
			next := c.Body((i + 1) % NumBodies)
			sep := math.Mod(angleOf(next)-angleOf(b)+4*math.Pi, 2*math.Pi)
			if !approx(sep, math.Pi/2, 1e-9) {
				t.Fatalf("expected a quarter turn between bodies %d and %d, got %f", i, next.Index, sep)
			}
		}
	}
}

func TestOrbitLegacyPhases(t *testing.T) {
	c := NewOrbitController(OrbitConfig{Phases: PhasesLegacy})
	c.Tick(0)
	b := c.Body(2)
	wantX := OrbitOrigin.X + OrbitRadius*math.Cos(math.Pi)
	wantZ := OrbitOrigin.Z + OrbitRadius*math.Sin(0.75*math.Pi)
	if !approx(b.Position.X, wantX, eps) || !approx(b.Position.Z, wantZ, eps) {
		t.Fatalf("expected legacy body 2 at (%f, %f), got (%f, %f)", wantX, wantZ, b.Position.X, b.Position.Z)
	}
	b = c.Body(3)
	wantX = OrbitOrigin.X + OrbitRadius*math.Cos(1.5*math.Pi)
	if !approx(b.Position.X, wantX, eps) || !approx(b.Position.Z, wantZ, eps) {
		t.Fatalf("expected legacy body 3 at (%f, %f), got (%f, %f)", wantX, wantZ, b.Position.X, b.Position.Z)
	}
	for i := 0; i < 2; i++ { // Untouched bodies
		u := NewOrbitController(OrbitConfig{})
		u.Tick(0)
		if c.Body(i).Position != u.Body(i).Position {
			t.Fatalf("legacy layout changed body %d", i)
		}
	}
}

func TestOrbitInitialPositions(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	for i, want := range InitialPositions {
		if got := c.Body(i).Position; got != want {
			t.Fatalf("expected body %d at %v before the first tick, got %v", i, want, got)
		}
	}
	if c.Camera().Position != CameraHome {
		t.Fatalf("expected the camera at %v, got %v", CameraHome, c.Camera().Position)
	}
}

func TestOrbitUnboundedAndClampedSpeed(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	for i := 0; i < 1000; i++ {
		c.OnWheel(1000)
	}
	if got := c.Orbit().AngularSpeed; !approx(got, 200, 1e-6) {
		t.Fatalf("expected unbounded speed 200, got %f", got)
	}
	c = NewOrbitController(OrbitConfig{MaxAngularSpeed: 0.5})
	for i := 0; i < 10; i++ {
		c.OnWheel(-1000)
	}
	if got := c.Orbit().AngularSpeed; got != -0.5 {
		t.Fatalf("expected clamped speed -0.5, got %f", got)
	}
}

func TestOrbitPointerMapping(t *testing.T) {
	const w, h = 800., 600.
	tests := []struct {
		x, y, wantX, wantY float64
	}{
		{0, 0, -0.5, -0.5},
		{w, h, 0.5, 0.5},
		{w / 2, h / 2, 0, 0},
		{w / 4, h, -0.25, 0.5},
	}
	c := NewOrbitController(OrbitConfig{})
	for _, tt := range tests {
		c.OnPointerMove(tt.x, tt.y, w, h)
		got := c.Cursor()
		if !approx(got.X, tt.wantX, eps) || !approx(got.Y, tt.wantY, eps) {
			t.Fatalf("pointer (%f, %f): expected cursor (%f, %f), got (%f, %f)", tt.x, tt.y, tt.wantX, tt.wantY, got.X, got.Y)
		}
	}
	c.OnPointerMove(10, 10, 0, h) // Degenerate viewport keeps the previous cursor
	if got := c.Cursor(); !approx(got.X, -0.25, eps) || !approx(got.Y, 0.5, eps) {
		t.Fatalf("expected a zero-width viewport to be ignored, got cursor %v", got)
	}
}

func TestOrbitTimeScaledUpdates(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	c.OnPointerMove(800, 0, 800, 600) // cursor (0.5, -0.5)
	c.OnWheel(500)
	c.Tick(0.5)
	cam := c.Camera().Position
	if !approx(cam.X, 0.5*0.5*CameraGain, eps) || !approx(cam.Y, 0.5*0.5*CameraGain, eps) || cam.Z != CameraHome.Z {
		t.Fatalf("unexpected camera position %v", cam)
	}
	if rot := c.Body(1).SelfRotation; !approx(rot.X, 0.05, eps) || !approx(rot.Y, 0.05, eps) {
		t.Fatalf("expected self rotation 0.05 after half a second, got %v", rot)
	}
	// Same number of frames, different frame times: same orbit, different spin
	slow, fast := NewOrbitController(OrbitConfig{}), NewOrbitController(OrbitConfig{})
	slow.OnWheel(1000)
	fast.OnWheel(1000)
	for i := 0; i < 30; i++ {
		slow.Tick(1. / 30)
		fast.Tick(1. / 144)
	}
	if slow.Orbit() != fast.Orbit() {
		t.Fatalf("orbit must only depend on the number of frames: %v vs %v", slow.Orbit(), fast.Orbit())
	}
	if slow.Body(0).SelfRotation.X <= fast.Body(0).SelfRotation.X {
		t.Fatalf("self rotation must depend on elapsed time")
	}
	c.Tick(0)
	if cam := c.Camera().Position; cam.X != 0 || cam.Y != 0 {
		t.Fatalf("expected no camera offset for a zero frame time, got %v", cam)
	}
}

func TestOrbitSnapshotAndReset(t *testing.T) {
	c := NewOrbitController(OrbitConfig{})
	c.OnWheel(1000)
	c.Tick(0.1)
	snap := c.Snapshot()
	c.Tick(0.1)
	if snap.Frames != 1 || snap.Orbit.Rotation == c.Orbit().Rotation {
		t.Fatalf("snapshot must not follow later ticks: %+v", snap.Orbit)
	}
	c.Reset()
	if c.Orbit() != (OrbitState{}) || c.Body(3).Position != InitialPositions[3] {
		t.Fatalf("reset did not restore the startup state")
	}
}
