package ui

import (
	"errors"
	"github.com/Yeicor/orbit-ui/internal"
	"github.com/fogleman/fauxgl"
	"image"
	"image/color"
	"math"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptColors changes the background color (the clear color of every frame).
func OptColors(background color.RGBA) Option {
	return func(r *Renderer) {
		r.scene.backgroundColor = background
	}
}

// OptColorMode selects how bodies are shaded: 0 material (Phong), 1 normal XYZ as RGB,
// 2 normals in wireframe mode.
func OptColorMode(mode int) Option {
	return func(r *Renderer) {
		r.colorMode = ((mode % colorModes) + colorModes) % colorModes
	}
}

// OptLight sets the directional light (direction towards the light, and intensity).
func OptLight(dir fauxgl.Vector, intensity float64) Option {
	return func(r *Renderer) {
		r.scene.lightDir = dir.Normalize()
		r.scene.lightIntensity = intensity
	}
}

//-----------------------------------------------------------------------------
// RENDERER
//-----------------------------------------------------------------------------

// ErrNoRenderTarget is returned when there is no surface to render to.
var ErrNoRenderTarget = errors.New("no render target")

const (
	colorModes            = 3
	defaultLightIntensity = 4.
)

// scene3 rasterizes the orbiting bodies on the CPU.
type scene3 struct {
	meshes          [internal.NumBodies]*fauxgl.Mesh // Body meshes centered on the origin (never modified)
	lastContext     *fauxgl.Context
	backgroundColor color.RGBA
	lightDir        fauxgl.Vector // Towards the light
	lightIntensity  float64
}

func newScene3(presets [internal.NumBodies]MeshPreset) *scene3 {
	s := &scene3{
		backgroundColor: color.RGBA{R: 10, G: 12, B: 20, A: 255},
		lightDir:        fauxgl.Vector{X: 0.5, Y: 1, Z: 0}.Normalize(),
		lightIntensity:  defaultLightIntensity,
	}
	for i, preset := range presets {
		s.meshes[i] = newPresetMesh(preset)
	}
	return s
}

// cameraMatrix looks down -Z from the camera position, as the camera never rotates.
func cameraMatrix(cam internal.CameraState, proj internal.Projection) (fauxgl.Matrix, fauxgl.Vector) {
	eye := r3mToFauxglVector(cam.Position)
	return fauxgl.LookAt(eye, eye.Add(fauxgl.Vector{Z: -1}), fauxgl.Vector{Y: 1}).
		Perspective(proj.FovY, proj.Aspect, proj.Near, proj.Far), eye
}

// bodyMatrix applies the self rotation (Y first, then X) before moving the body to its position.
func bodyMatrix(b internal.OrbitBody) fauxgl.Matrix {
	return fauxgl.Identity().
		Rotate(fauxgl.Vector{Y: 1}, b.SelfRotation.Y).
		Rotate(fauxgl.Vector{X: 1}, b.SelfRotation.X).
		Translate(r3mToFauxglVector(b.Position))
}

// render draws the given state into dst (reallocated if nil or of a different size).
func (s *scene3) render(dst *image.NRGBA, state *internal.ControllerState, proj internal.Projection,
	width, height int, material Material, colorMode int) (*image.NRGBA, error) {
	if width < 1 || height < 1 {
		return nil, ErrNoRenderTarget
	}
	if s.lastContext == nil || s.lastContext.Width != width || s.lastContext.Height != height {
		// Rebuild rendering context only when needed
		s.lastContext = fauxgl.NewContext(width, height)
	} else {
		s.lastContext.ClearDepthBuffer()
	}
	s.lastContext.ClearColorBufferWith(fauxgl.MakeColor(s.backgroundColor))

	camMatrix, eye := cameraMatrix(state.Camera, proj)
	var shader fauxgl.Shader
	if colorMode == 0 {
		phong := fauxgl.NewPhongShader(camMatrix, s.lightDir, eye)
		phong.ObjectColor, phong.DiffuseColor, phong.SpecularColor, phong.SpecularPower = material.phong(s.lightIntensity)
		shader = phong
	} else {
		shader = &r3mNormalShader{camMatrix}
	}
	s.lastContext.Shader = shader
	s.lastContext.Wireframe = colorMode == 2

	for i, body := range state.Bodies {
		mesh := s.meshes[i].Copy()
		mesh.Transform(bodyMatrix(body))
		s.lastContext.DrawMesh(mesh) // This is already multithread, no need to parallelize anymore
	}

	img, ok := s.lastContext.Image().(*image.NRGBA)
	if !ok {
		return nil, ErrNoRenderTarget
	}
	if dst == nil || dst.Bounds() != img.Bounds() {
		dst = image.NewNRGBA(img.Bounds())
	}
	copy(dst.Pix, img.Pix)
	return dst, nil
}

// r3mNormalShader colors each fragment with its world-space normal
type r3mNormalShader struct {
	Matrix fauxgl.Matrix
}

func (shader *r3mNormalShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

func (shader *r3mNormalShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return fauxgl.MakeColor(color.RGBA{
		R: uint8(math.Abs(v.Normal.X) * 255),
		G: uint8(math.Abs(v.Normal.Y) * 255),
		B: uint8(math.Abs(v.Normal.Z) * 255),
		A: 255,
	})
}
