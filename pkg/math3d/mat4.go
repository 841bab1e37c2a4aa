package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order and applied to column
// vectors (M·v). Composite transforms read right to left.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
//
// The coordinate system is left-handed: +X right, +Y up, +Z into the screen.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// World composes scale, then X/Y/Z rotation, then translation: T·Rz·Ry·Rx·S.
func World(scale, rotation, translation Vec3) Mat4 {
	m := Scale(scale)
	m = RotateX(rotation.X).Mul(m)
	m = RotateY(rotation.Y).Mul(m)
	m = RotateZ(rotation.Z).Mul(m)
	return Translate(translation).Mul(m)
}

// LookAt creates a view matrix looking from eye towards target.
// The returned matrix maps world space into a camera space where the
// camera sits at the origin looking down +Z.
func LookAt(eye, target, up Vec3) Mat4 {
	z := target.Sub(eye).Normalize() // Forward
	x := up.Cross(z).Normalize()     // Right
	y := z.Cross(x)                  // Up (recomputed)

	return Mat4{
		x.X, x.Y, x.Z, -x.Dot(eye),
		y.X, y.Y, y.Z, -y.Dot(eye),
		z.X, z.Y, z.Z, -z.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective creates a perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is height/width, so X is squeezed for wide viewports.
// near and far are clipping planes.
//
// The resulting W carries view-space depth, and after the divide Z maps
// near to 0 and far to 1.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	fn := far / (far - near)

	return Mat4{
		aspect * f, 0, 0, 0,
		0, f, 0, 0,
		0, 0, fn, -fn * near,
		0, 0, 1, 0,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 as a point (w=1).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// Project transforms v and divides X, Y and Z by the resulting W.
// When W is zero the divide is skipped and the vector is returned as is.
// W is left untouched so callers keep the view-space depth.
func (m Mat4) Project(v Vec4) Vec4 {
	r := m.MulVec4(v)
	if r.W != 0 {
		r.X /= r.W
		r.Y /= r.W
		r.Z /= r.W
	}
	return r
}
