package render

import "strings"

// RenderMode selects which passes draw each triangle. Modes combine.
type RenderMode uint8

const (
	ModeWireframe RenderMode = 1 << iota // Triangle edges
	ModeFilled                           // Flat lit color
	ModeTextured                         // Perspective-correct texture
	ModeVertices                         // Vertex markers
)

// Has reports whether every bit of f is set.
func (m RenderMode) Has(f RenderMode) bool {
	return m&f == f
}

// Toggle flips the given mode bits.
func (m RenderMode) Toggle(f RenderMode) RenderMode {
	return m ^ f
}

func (m RenderMode) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		bit  RenderMode
		name string
	}{
		{ModeWireframe, "wireframe"},
		{ModeFilled, "filled"},
		{ModeTextured, "textured"},
		{ModeVertices, "vertices"},
	} {
		if m.Has(e.bit) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "+")
}

// CullMode selects face culling.
type CullMode int

const (
	CullBackface CullMode = iota // Drop faces pointing away from the camera
	CullNone                     // Draw both sides
)

func (c CullMode) String() string {
	if c == CullNone {
		return "none"
	}
	return "backface"
}

// Options are the runtime render toggles.
type Options struct {
	Mode RenderMode
	Cull CullMode
}

// DefaultOptions draws textured triangles with backface culling.
func DefaultOptions() Options {
	return Options{Mode: ModeTextured, Cull: CullBackface}
}
