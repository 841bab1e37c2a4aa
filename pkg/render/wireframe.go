package render

// vertexMarkerSize is the edge length of the square drawn at each vertex.
const vertexMarkerSize = 6

// DrawWireframe outlines the triangle's three edges. Lines ignore the
// depth buffer and always draw on top.
func (r *Rasterizer) DrawWireframe(tri ScreenTriangle, c Color) {
	v := tri.V
	r.fb.DrawLine(v[0].X, v[0].Y, v[1].X, v[1].Y, c)
	r.fb.DrawLine(v[1].X, v[1].Y, v[2].X, v[2].Y, c)
	r.fb.DrawLine(v[2].X, v[2].Y, v[0].X, v[0].Y, c)
}

// DrawVertexMarkers draws a small filled square centered on each vertex.
func (r *Rasterizer) DrawVertexMarkers(tri ScreenTriangle, c Color) {
	const half = vertexMarkerSize / 2
	for _, v := range tri.V {
		r.fb.DrawRect(v.X-half, v.Y-half, vertexMarkerSize, vertexMarkerSize, c)
	}
}
