package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// Light is a single directional light. Direction points from the light
// into the scene.
type Light struct {
	Direction math3d.Vec3
}

// NewLight creates a light shining along dir.
func NewLight(dir math3d.Vec3) Light {
	return Light{Direction: dir.Normalize()}
}

// Intensity returns how strongly a face with the given unit normal is lit,
// clamped to [0, 1].
func (l Light) Intensity(normal math3d.Vec3) float64 {
	return clamp01(-normal.Dot(l.Direction))
}

// ApplyIntensity scales each color channel by factor (clamped to [0, 1]).
// Alpha is preserved.
func ApplyIntensity(c Color, factor float64) Color {
	factor = clamp01(factor)
	fc, _ := colorful.MakeColor(RGB(c.R, c.G, c.B))
	lit := colorful.Color{R: fc.R * factor, G: fc.G * factor, B: fc.B * factor}.Clamped()
	r, g, b := lit.RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
