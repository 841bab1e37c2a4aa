package math3d

// Vec4 is a homogeneous point. After projection W holds the view-space
// depth of the original point, which the rasterizer needs for
// perspective-correct interpolation.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 builds a Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// V4FromV3 lifts v to homogeneous coordinates; w = 1 for points.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}
