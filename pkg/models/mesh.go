// Package models holds triangle meshes in the form the render pipeline
// consumes and the loaders that produce them (OBJ, glTF/GLB and a
// built-in cube).
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// ErrIndexOutOfRange is returned when a face references a missing vertex
// or texture coordinate.
var ErrIndexOutOfRange = errors.New("face index out of range")

// NoUV marks a face corner without a texture coordinate.
const NoUV = -1

// Mesh is an indexed triangle mesh with its own model transform.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	TexCoords []math3d.Vec2
	Faces     []Face

	// Model transform, applied as scale, then X/Y/Z rotation, then translation.
	Scale       math3d.Vec3
	Rotation    math3d.Vec3 // Euler angles in radians
	Translation math3d.Vec3

	Texture *render.Texture

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle given by three 0-based vertex indices and three
// 0-based texture coordinate indices (NoUV when absent).
type Face struct {
	V     [3]int
	UV    [3]int
	Color render.Color
}

// NewMesh creates an empty mesh with unit scale.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:  name,
		Scale: math3d.V3(1, 1, 1),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	b := render.BoundsOf(m.Vertices)
	m.BoundsMin, m.BoundsMax = b.Min, b.Max
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// FitToUnit recenters the vertices on the origin and sets a uniform
// scale so the largest dimension spans two units, like the built-in cube.
func (m *Mesh) FitToUnit() {
	if len(m.Vertices) == 0 {
		return
	}
	m.CalculateBounds()
	c := m.Center()
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(c)
	}
	m.CalculateBounds()

	size := m.Size()
	largest := max(size.X, size.Y, size.Z)
	if largest > 0 {
		s := 2 / largest
		m.Scale = math3d.V3(s, s, s)
	}
}

// Validate checks every face index against the vertex and texture
// coordinate lists.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for k := range 3 {
			if f.V[k] < 0 || f.V[k] >= len(m.Vertices) {
				return fmt.Errorf("face %d vertex %d: %w", i, f.V[k], ErrIndexOutOfRange)
			}
			if f.UV[k] != NoUV && (f.UV[k] < 0 || f.UV[k] >= len(m.TexCoords)) {
				return fmt.Errorf("face %d uv %d: %w", i, f.UV[k], ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Clone creates a deep copy of the mesh. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]math3d.Vec3(nil), m.Vertices...)
	clone.TexCoords = append([]math3d.Vec2(nil), m.TexCoords...)
	clone.Faces = append([]Face(nil), m.Faces...)
	return &clone
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Face returns face i resolved to positions and texture coordinates.
// Implements render.MeshSource.
func (m *Mesh) Face(i int) render.MeshFace {
	f := m.Faces[i]
	out := render.MeshFace{Color: f.Color}
	for k := range 3 {
		out.Positions[k] = m.Vertices[f.V[k]]
		if f.UV[k] != NoUV {
			out.UVs[k] = m.TexCoords[f.UV[k]]
		}
	}
	return out
}

// Transform returns the model transform.
// Implements render.MeshSource.
func (m *Mesh) Transform() (scale, rotation, translation math3d.Vec3) {
	return m.Scale, m.Rotation, m.Translation
}

// Bounds returns the axis-aligned bounding box.
// Implements render.BoundedMeshSource.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Model pairs the mesh with its texture for the pipeline.
func (m *Mesh) Model() render.Model {
	return render.Model{Mesh: m, Texture: m.Texture}
}
