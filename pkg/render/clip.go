package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// MaxPolygonVertices bounds a clipped polygon. A triangle clipped by six
// planes grows to at most nine vertices.
const MaxPolygonVertices = 10

// ErrPolygonOverflow is returned when clipping would grow a polygon past
// MaxPolygonVertices.
var ErrPolygonOverflow = errors.New("polygon vertex capacity exceeded")

// ClipVertex is a view-space position with its texture coordinate.
type ClipVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Lerp interpolates position and texture coordinate with the same t.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a ClipVertex) Lerp(b ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Position: a.Position.Lerp(b.Position, t),
		UV:       a.UV.Lerp(b.UV, t),
	}
}

// ClipTriangle is one triangle produced by Polygon.Triangulate.
type ClipTriangle [3]ClipVertex

// Polygon is a convex polygon with bounded capacity. Vertex order encodes
// winding and is preserved by clipping.
type Polygon struct {
	verts [MaxPolygonVertices]ClipVertex
	n     int
}

// PolygonFromTriangle starts a polygon from one mesh face.
func PolygonFromTriangle(a, b, c ClipVertex) Polygon {
	var p Polygon
	p.verts[0], p.verts[1], p.verts[2] = a, b, c
	p.n = 3
	return p
}

// NewPolygon builds a polygon from an arbitrary vertex list.
func NewPolygon(vs ...ClipVertex) (Polygon, error) {
	var p Polygon
	for _, v := range vs {
		if err := p.add(v); err != nil {
			return Polygon{}, err
		}
	}
	return p, nil
}

// Len returns the vertex count.
func (p *Polygon) Len() int {
	return p.n
}

// Vertices returns the live vertices. The slice aliases the polygon.
func (p *Polygon) Vertices() []ClipVertex {
	return p.verts[:p.n]
}

func (p *Polygon) add(v ClipVertex) error {
	if p.n == MaxPolygonVertices {
		return ErrPolygonOverflow
	}
	p.verts[p.n] = v
	p.n++
	return nil
}

// ClipAgainstPlane clips poly in place against a single plane
// (Sutherland-Hodgman). A vertex is inside when its signed distance is
// >= 0. An intersection is emitted only when an edge's endpoints lie
// strictly on opposite sides, so vertices lying on the plane are kept
// once and never duplicated.
func ClipAgainstPlane(poly *Polygon, plane Plane) error {
	if poly.n == 0 {
		return nil
	}

	var out Polygon
	prev := poly.verts[poly.n-1]
	prevDot := plane.DistanceToPoint(prev.Position)

	for i := range poly.n {
		curr := poly.verts[i]
		currDot := plane.DistanceToPoint(curr.Position)

		if prevDot*currDot < 0 {
			t := prevDot / (prevDot - currDot)
			if err := out.add(prev.Lerp(curr, t)); err != nil {
				return err
			}
		}
		if currDot >= 0 {
			if err := out.add(curr); err != nil {
				return err
			}
		}

		prev, prevDot = curr, currDot
	}

	*poly = out
	return nil
}

// ClipPolygon clips poly against every frustum plane in order. On error
// the polygon is left partially clipped and must be discarded.
func (f Frustum) ClipPolygon(poly *Polygon) error {
	for i := range f.Planes {
		if err := ClipAgainstPlane(poly, f.Planes[i]); err != nil {
			return fmt.Errorf("clip %s plane: %w", planeNames[i], err)
		}
		if poly.n < 3 {
			poly.n = 0
			return nil
		}
	}
	return nil
}

// Triangulate fans the polygon around its first vertex and appends the
// n-2 triangles to dst. Polygons with fewer than three vertices produce
// nothing.
func (p *Polygon) Triangulate(dst []ClipTriangle) []ClipTriangle {
	for i := 0; i+2 < p.n; i++ {
		dst = append(dst, ClipTriangle{p.verts[0], p.verts[i+1], p.verts[i+2]})
	}
	return dst
}
