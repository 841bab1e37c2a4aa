package render

import (
	"github.com/taigrr/softpipe/pkg/math3d"
)

// farDepth is the depth buffer's reset value. Anything visible is closer.
const farDepth = 1.0

// DepthBuffer stores one depth value per pixel, row-major.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
}

// NewDepthBuffer creates a depth buffer cleared to the far value.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to the far value (call before each frame).
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Values)
	if n == 0 {
		return
	}
	d.Values[0] = farDepth
	for i := 1; i < n; i *= 2 {
		copy(d.Values[i:], d.Values[:i])
	}
}

// At returns the depth at (x, y). Out of bounds reads report the far value.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return farDepth
	}
	return d.Values[y*d.Width+x]
}

// Set writes the depth at (x, y). Out of bounds writes are dropped.
func (d *DepthBuffer) Set(x, y int, z float64) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	d.Values[y*d.Width+x] = z
}

// ScreenVertex is a projected vertex: integer pixel position, the
// post-divide Z, the pre-divide W (view depth) and its texture coordinate.
type ScreenVertex struct {
	X, Y int
	Z    float64
	W    float64
	UV   math3d.Vec2
}

// ScreenTriangle is one triangle ready for rasterization.
type ScreenTriangle struct {
	V       [3]ScreenVertex
	Color   Color
	Texture *Texture
}

// Rasterizer fills screen triangles into a color buffer with a depth test.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer
}

// NewRasterizer creates a rasterizer writing to fb and depth, which must
// have the same dimensions.
func NewRasterizer(fb *Framebuffer, depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{fb: fb, depth: depth}
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// Framebuffer returns the color target.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Depth returns the depth target.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// DrawFilled fills the triangle with its flat color.
func (r *Rasterizer) DrawFilled(tri ScreenTriangle) {
	r.scanTriangle(&tri, false)
}

// DrawTextured fills the triangle with perspective-correct texels. A
// triangle without a texture is filled flat instead.
func (r *Rasterizer) DrawTextured(tri ScreenTriangle) {
	if tri.Texture == nil || tri.Texture.Width == 0 || tri.Texture.Height == 0 {
		r.scanTriangle(&tri, false)
		return
	}
	// Image rows run top-down while v runs bottom-up.
	for i := range tri.V {
		tri.V[i].UV.Y = 1 - tri.V[i].UV.Y
	}
	r.scanTriangle(&tri, true)
}

// sortByY orders the vertices by ascending Y with three swaps.
func sortByY(v *[3]ScreenVertex) {
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Y > v[2].Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
}

// scanTriangle walks the upper (y0 <= y < y1) and lower (y1 <= y <= y2)
// halves of the triangle so every covered pixel is visited exactly once.
func (r *Rasterizer) scanTriangle(tri *ScreenTriangle, textured bool) {
	sortByY(&tri.V)
	a, b, c := &tri.V[0], &tri.V[1], &tri.V[2]

	if a.X == b.X && b.X == c.X {
		return
	}
	if a.Y == c.Y {
		return
	}
	if a.W == 0 || b.W == 0 || c.W == 0 {
		return
	}

	pa := math3d.V2(float64(a.X), float64(a.Y))
	pb := math3d.V2(float64(b.X), float64(b.Y))
	pc := math3d.V2(float64(c.X), float64(c.Y))
	area := pc.Sub(pa).Cross(pb.Sub(pa))
	if area == 0 {
		return
	}

	// Long edge a->c spans both halves.
	invSlope2 := float64(c.X-a.X) / float64(c.Y-a.Y)

	if b.Y != a.Y {
		invSlope1 := float64(b.X-a.X) / float64(b.Y-a.Y)
		for y := a.Y; y < b.Y; y++ {
			xStart := float64(a.X) + float64(y-a.Y)*invSlope1
			xEnd := float64(a.X) + float64(y-a.Y)*invSlope2
			r.scanRow(y, xStart, xEnd, tri, pa, pb, pc, area, textured)
		}
	}

	invSlope1 := 0.0
	if c.Y != b.Y {
		invSlope1 = float64(c.X-b.X) / float64(c.Y-b.Y)
	}
	for y := b.Y; y <= c.Y; y++ {
		xStart := float64(b.X) + float64(y-b.Y)*invSlope1
		xEnd := float64(a.X) + float64(y-a.Y)*invSlope2
		r.scanRow(y, xStart, xEnd, tri, pa, pb, pc, area, textured)
	}
}

func (r *Rasterizer) scanRow(y int, xStart, xEnd float64, tri *ScreenTriangle, pa, pb, pc math3d.Vec2, area float64, textured bool) {
	if y < 0 || y >= r.Height() {
		return
	}
	if xEnd < xStart {
		xStart, xEnd = xEnd, xStart
	}
	x0, x1 := int(xStart), int(xEnd)
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= r.Width() {
		x1 = r.Width() - 1
	}
	for x := x0; x <= x1; x++ {
		r.shadePixel(x, y, tri, pa, pb, pc, area, textured)
	}
}

func (r *Rasterizer) shadePixel(x, y int, tri *ScreenTriangle, pa, pb, pc math3d.Vec2, area float64, textured bool) {
	w := barycentricArea(pa, pb, pc, math3d.V2(float64(x), float64(y)), area)
	a, b, c := &tri.V[0], &tri.V[1], &tri.V[2]

	invW := w.X/a.W + w.Y/b.W + w.Z/c.W
	if invW == 0 {
		return
	}
	depth := 1 - invW
	if depth >= r.depth.At(x, y) {
		return
	}

	col := tri.Color
	if textured {
		u := (w.X*a.UV.X/a.W + w.Y*b.UV.X/b.W + w.Z*c.UV.X/c.W) / invW
		v := (w.X*a.UV.Y/a.W + w.Y*b.UV.Y/b.W + w.Z*c.UV.Y/c.W) / invW
		col = tri.Texture.Sample(u, v)
	}

	r.fb.SetPixel(x, y, col)
	r.depth.Set(x, y, depth)
}

// Barycentric returns the weights (alpha, beta, gamma) of p relative to
// triangle abc as ratios of signed areas. For a non-degenerate triangle
// the weights sum to 1 and each vertex maps to its unit weight.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	area := c.Sub(a).Cross(b.Sub(a))
	if area == 0 {
		return math3d.Vec3{}
	}
	return barycentricArea(a, b, c, p, area)
}

func barycentricArea(a, b, c, p math3d.Vec2, area float64) math3d.Vec3 {
	alpha := c.Sub(p).Cross(b.Sub(p)) / area
	beta := c.Sub(a).Cross(p.Sub(a)) / area
	return math3d.V3(alpha, beta, 1-alpha-beta)
}
