package ui

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"math"
)

// MeshPreset is a named triangle generator for one of the orbiting bodies.
type MeshPreset struct {
	Name      string
	Triangles func() []*sdf.Triangle3
}

// DefaultPresets are the bodies of the scene, in body index order.
var DefaultPresets = [4]MeshPreset{
	{"torus", func() []*sdf.Triangle3 { return Torus(1, 0.4, 16, 60) }},
	{"octahedron", func() []*sdf.Triangle3 { return Octahedron(1) }},
	{"torus-knot", func() []*sdf.Triangle3 { return TorusKnot(0.8, 0.35, 100, 16, 2, 3) }},
	{"icosahedron", func() []*sdf.Triangle3 { return Icosahedron(1) }},
}

// Torus builds a torus around the Z axis with the given ring radius and tube radius.
func Torus(radius, tube float64, radialSegments, tubularSegments int) []*sdf.Triangle3 {
	grid := make([][]v3.Vec, radialSegments+1)
	for j := range grid {
		grid[j] = make([]v3.Vec, tubularSegments+1)
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := range grid[j] {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			grid[j][i] = v3.Vec{
				X: (radius + tube*math.Cos(v)) * math.Cos(u),
				Y: (radius + tube*math.Cos(v)) * math.Sin(u),
				Z: tube * math.Sin(v),
			}
		}
	}
	return gridTriangles(grid, false)
}

// TorusKnot builds a (p, q) torus knot tube.
func TorusKnot(radius, tube float64, tubularSegments, radialSegments, p, q int) []*sdf.Triangle3 {
	curve := func(u float64) v3.Vec {
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		return v3.Vec{
			X: radius * (2 + cs) * 0.5 * math.Cos(u),
			Y: radius * (2 + cs) * 0.5 * math.Sin(u),
			Z: radius * math.Sin(quOverP) * 0.5,
		}
	}
	grid := make([][]v3.Vec, tubularSegments+1)
	for i := range grid {
		grid[i] = make([]v3.Vec, radialSegments+1)
		u := float64(i) / float64(tubularSegments) * float64(p) * 2 * math.Pi
		p1, p2 := curve(u), curve(u+0.01)
		tangent := p2.Sub(p1)
		normal := p2.Add(p1)
		binormal := tangent.Cross(normal).Normalize()
		normal = binormal.Cross(tangent).Normalize()
		for j := range grid[i] {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			grid[i][j] = p1.
				Add(normal.MulScalar(-tube * math.Cos(v))).
				Add(binormal.MulScalar(tube * math.Sin(v)))
		}
	}
	return gridTriangles(grid, true) // The knot grid runs along the tube, so faces wind the other way
}

// gridTriangles stitches a (rows+1)x(cols+1) vertex grid into 2*rows*cols triangles.
func gridTriangles(grid [][]v3.Vec, flip bool) []*sdf.Triangle3 {
	var res []*sdf.Triangle3
	for j := 1; j < len(grid); j++ {
		for i := 1; i < len(grid[j]); i++ {
			a, b, c, d := grid[j][i-1], grid[j-1][i-1], grid[j-1][i], grid[j][i]
			if flip {
				b, d = d, b
			}
			res = append(res, &sdf.Triangle3{V: [3]v3.Vec{a, b, d}}, &sdf.Triangle3{V: [3]v3.Vec{b, c, d}})
		}
	}
	return res
}

// Octahedron builds a regular octahedron with its vertices at distance radius from the origin.
func Octahedron(radius float64) []*sdf.Triangle3 {
	vertices := []v3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	faces := [][3]int{{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2}, {1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2}}
	return polyhedron(vertices, faces, radius)
}

// Icosahedron builds a regular icosahedron with its vertices at distance radius from the origin.
func Icosahedron(radius float64) []*sdf.Triangle3 {
	t := (1 + math.Sqrt(5)) / 2
	vertices := []v3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return polyhedron(vertices, faces, radius)
}

// polyhedron projects the vertices on a sphere and winds every face outwards (convex shapes only).
func polyhedron(vertices []v3.Vec, faces [][3]int, radius float64) []*sdf.Triangle3 {
	res := make([]*sdf.Triangle3, 0, len(faces))
	for _, f := range faces {
		tri := &sdf.Triangle3{V: [3]v3.Vec{
			vertices[f[0]].Normalize().MulScalar(radius),
			vertices[f[1]].Normalize().MulScalar(radius),
			vertices[f[2]].Normalize().MulScalar(radius),
		}}
		centroid := tri.V[0].Add(tri.V[1]).Add(tri.V[2])
		if tri.Normal().Dot(centroid) < 0 {
			tri.V[1], tri.V[2] = tri.V[2], tri.V[1]
		}
		res = append(res, tri)
	}
	return res
}

// newPresetMesh converts a preset to a flat-shaded fauxgl mesh centered on the origin.
func newPresetMesh(preset MeshPreset) *fauxgl.Mesh {
	tris := preset.Triangles()
	triangles := make([]*fauxgl.Triangle, 0, len(tris))
	for _, tri := range tris {
		triangles = append(triangles, r3mConvertTriangle(tri))
	}
	return fauxgl.NewTriangleMesh(triangles)
}

func r3mConvertTriangle(tri *sdf.Triangle3) *fauxgl.Triangle {
	normalV := r3mToFauxglVector(tri.Normal())
	return &fauxgl.Triangle{
		V1: fauxgl.Vertex{Position: r3mToFauxglVector(tri.V[0]), Normal: normalV, Color: fauxgl.Gray(1)},
		V2: fauxgl.Vertex{Position: r3mToFauxglVector(tri.V[1]), Normal: normalV, Color: fauxgl.Gray(1)},
		V3: fauxgl.Vertex{Position: r3mToFauxglVector(tri.V[2]), Normal: normalV, Color: fauxgl.Gray(1)},
	}
}

func r3mToFauxglVector(v v3.Vec) fauxgl.Vector {
	return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
