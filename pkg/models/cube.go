package models

import (
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

var cubeVertices = []math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// Per-face corners: bottom-left, top-left, top-right, bottom-right.
var cubeTexCoords = []math3d.Vec2{
	{X: 0, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
}

// 1-based like an OBJ file, clockwise seen from outside.
var cubeFaces = [12][3]int{
	// front
	{1, 2, 3},
	{1, 3, 4},
	// right
	{4, 3, 5},
	{4, 5, 6},
	// back
	{6, 5, 7},
	{6, 7, 8},
	// left
	{8, 7, 2},
	{8, 2, 1},
	// top
	{2, 7, 5},
	{2, 5, 3},
	// bottom
	{6, 8, 1},
	{6, 1, 4},
}

// NewCube returns a white 2x2x2 cube centered on the origin with
// 8 vertices and 12 faces.
func NewCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices...)
	m.TexCoords = append(m.TexCoords, cubeTexCoords...)

	for i, f := range cubeFaces {
		uv := [3]int{0, 1, 2}
		if i%2 == 1 {
			uv = [3]int{0, 2, 3}
		}
		m.Faces = append(m.Faces, Face{
			V:     [3]int{f[0] - 1, f[1] - 1, f[2] - 1},
			UV:    uv,
			Color: render.ColorWhite,
		})
	}
	m.CalculateBounds()
	return m
}
