// Package math3d provides the vector and matrix algebra used by the
// software pipeline. All values are plain structs passed by value; every
// operation returns a new value.
package math3d

import "math"

// Vec3 is a point or direction in a left-handed space: +X right, +Y up,
// +Z into the screen.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Up is world +Y.
func Up() Vec3 { return Vec3{Y: 1} }

// Forward is world +Z, the direction an unrotated camera looks.
func Forward() Vec3 { return Vec3{Z: 1} }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Negate flips the direction.
func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross follows the left-hand rule: Right × Up = Forward.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Len is the Euclidean length.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize scales a to unit length. The zero vector stays zero so
// degenerate faces produce a zero normal instead of NaNs.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Lerp moves from a toward b by t; t = 0 gives a, t = 1 gives b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Min and Max work per component and are used to grow bounding boxes.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
