package ui

import (
	"errors"
	"math"
	"testing"
)

func TestRendererIgnoresDegenerateResize(t *testing.T) {
	r := NewRenderer(OptResInv(2))
	r.Resize(800, 600, 2)
	r.Resize(0, 600, 1)
	r.Resize(800, -1, 1)
	if w, h := r.viewport.SurfaceSize(); w != 400 || h != 300 {
		t.Fatalf("expected the last valid size to be kept (400x300), got %dx%d", w, h)
	}
}

func TestRendererInput(t *testing.T) {
	r := NewRenderer(OptMaxAngularSpeed(0.3), OptWheelPixelsPerNotch(50))
	r.Resize(200, 100, 1)
	r.Wheel(1000)
	r.Wheel(1000)
	r.PointerMove(200, 0)
	r.Frame(0.1)
	s := r.State()
	if s.Orbit.Rotation != 0.3 {
		t.Fatalf("expected the clamped speed to be applied once, got rotation %f", s.Orbit.Rotation)
	}
	if s.Cursor.X != 0.5 || s.Cursor.Y != -0.5 {
		t.Fatalf("unexpected cursor %+v", s.Cursor)
	}
	if math.Abs(s.Camera.Position.X-0.5) > 1e-9 || math.Abs(s.Camera.Position.Y-0.5) > 1e-9 {
		t.Fatalf("unexpected camera %v", s.Camera.Position)
	}
	s.Orbit.Rotation = 42
	if r.State().Orbit.Rotation == 42 {
		t.Fatal("State must return a copy")
	}
}

func TestRendererStop(t *testing.T) {
	r := NewRenderer()
	r.Wheel(1000)
	if err := r.Frame(0.1); err != nil {
		t.Fatal(err)
	}
	r.Stop()
	if err := r.Frame(0.1); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped after Stop, got %v", err)
	}
	if s := r.State(); s.Frames != 1 {
		t.Fatalf("expected no animation after Stop, got %d frames", s.Frames)
	}
	r.Stop()
	select {
	case <-r.loop.Done():
	default:
		t.Fatal("expected the frame loop to be stopped")
	}
}
