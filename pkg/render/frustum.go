// Package render implements the software pipeline: camera, frustum
// clipping, scanline rasterization with a depth buffer, and the per-mesh
// orchestrator that ties them together.
package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// Plane is a clipping plane given by a point on it and a unit normal that
// points into the visible half-space.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = inside (same side as normal), negative = outside.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// Frustum holds the six view-space clipping planes.
// Planes are ordered: Left, Right, Top, Bottom, Near, Far, which is also
// the order polygons are clipped in.
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumTop
	FrustumBottom
	FrustumNear
	FrustumFar
)

var planeNames = [6]string{"left", "right", "top", "bottom", "near", "far"}

// NewFrustum builds the view-space frustum for a camera at the origin
// looking down +Z. fovX and fovY are full angles in radians.
func NewFrustum(fovX, fovY, near, far float64) Frustum {
	cx, sx := math.Cos(fovX/2), math.Sin(fovX/2)
	cy, sy := math.Cos(fovY/2), math.Sin(fovY/2)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(cx, 0, sx)}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(-cx, 0, sx)}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(0, -cy, sy)}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(0, cy, sy)}
	f.Planes[FrustumNear] = Plane{Point: math3d.V3(0, 0, near), Normal: math3d.V3(0, 0, 1)}
	f.Planes[FrustumFar] = Plane{Point: math3d.V3(0, 0, far), Normal: math3d.V3(0, 0, -1)}
	return f
}

// HorizontalFOV derives the horizontal field of view from the vertical one
// and the viewport aspect ratio (width / height).
func HorizontalFOV(fovY, aspect float64) float64 {
	return 2 * math.Atan(math.Tan(fovY/2)*aspect)
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the AABB enclosing points. An empty slice yields the
// zero box.
func BoundsOf(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	out := AABB{Min: m.MulVec3(corners[0])}
	out.Max = out.Min
	for _, c := range corners[1:] {
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// IntersectAABB tests if the AABB intersects or is inside the frustum.
// Returns true if any part of the AABB may be visible.
// Uses the "positive vertex" optimization for faster rejection.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// The corner furthest along the normal; if it is outside, every corner is.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether the whole box is inside every plane. Faces
// of such a mesh need no clipping.
func (f Frustum) ContainsAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]
		nVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			selectComponent(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			selectComponent(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)
		if plane.DistanceToPoint(nVertex) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
