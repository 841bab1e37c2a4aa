package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// ErrInvalidConfig is returned by NewPipeline and Resize for unusable settings.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// MeshFace is one triangle of a mesh in model space.
type MeshFace struct {
	Positions [3]math3d.Vec3
	UVs       [3]math3d.Vec2
	Color     Color
}

// MeshSource is what the pipeline needs from a mesh. It keeps the render
// package independent of any model format.
type MeshSource interface {
	FaceCount() int
	Face(i int) MeshFace
	Transform() (scale, rotation, translation math3d.Vec3)
}

// BoundedMeshSource extends MeshSource with model-space bounds, which lets
// the pipeline reject a whole mesh outside the frustum.
type BoundedMeshSource interface {
	MeshSource
	Bounds() (min, max math3d.Vec3)
}

// Model pairs a mesh with its optional texture.
type Model struct {
	Mesh    MeshSource
	Texture *Texture
}

// Config holds the fixed pipeline settings.
type Config struct {
	Width, Height int
	FOV           float64 // Vertical field of view in radians
	Near, Far     float64

	Light        Light
	ClearColor   Color
	WireColor    Color
	VertexColor  Color
	GridSpacing  int // Background dot grid spacing in pixels, 0 disables
	GridColor    Color
	MaxTriangles int // Per-frame triangle budget
}

// DefaultConfig returns an 800x600 viewport with a 60 degree vertical FOV.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		FOV:          math.Pi / 3,
		Near:         0.1,
		Far:          100,
		Light:        NewLight(math3d.V3(0, 0, 1)),
		ClearColor:   ColorDark,
		WireColor:    ColorWhite,
		VertexColor:  ColorRed,
		GridSpacing:  10,
		GridColor:    ColorGray,
		MaxTriangles: 10000,
	}
}

// Validate checks the config for values the pipeline cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov %v out of (0, pi)", ErrInvalidConfig, c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: clip range near=%v far=%v", ErrInvalidConfig, c.Near, c.Far)
	case c.MaxTriangles <= 0:
		return fmt.Errorf("%w: max triangles %d", ErrInvalidConfig, c.MaxTriangles)
	}
	return nil
}

// CullingStats tracks whole-mesh frustum rejection.
type CullingStats struct {
	MeshesTested int // Meshes with bounds tested against the frustum
	MeshesCulled int // Meshes rejected without per-face work
	MeshesDrawn  int // Meshes that passed
	MeshesInside int // Drawn meshes entirely inside, drawn without clipping
}

// Stats are the counters of the last Update.
type Stats struct {
	CullingStats
	Faces            int // Faces considered
	FacesBackfaced   int // Faces dropped by backface culling
	FacesClipped     int // Faces clipped away entirely
	ClipErrors       int // Faces dropped because clipping overflowed
	Triangles        int // Triangles queued for rasterization
	TrianglesDropped int // Triangles over the MaxTriangles budget
}

// Pipeline owns the render context: color and depth buffers, the
// projection, the frustum and the per-frame triangle list. It is not safe
// for concurrent use.
type Pipeline struct {
	cfg  Config
	opts Options

	fb      *Framebuffer
	depth   *DepthBuffer
	rast    *Rasterizer
	frustum Frustum
	proj    math3d.Mat4

	tris    []ScreenTriangle
	clipped []ClipTriangle
	stats   Stats
}

// NewPipeline validates cfg and allocates the buffers.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:  cfg,
		opts: DefaultOptions(),
		tris: make([]ScreenTriangle, 0, min(cfg.MaxTriangles, 1024)),
	}
	p.allocate()
	return p, nil
}

func (p *Pipeline) allocate() {
	p.fb = NewFramebuffer(p.cfg.Width, p.cfg.Height)
	p.depth = NewDepthBuffer(p.cfg.Width, p.cfg.Height)
	p.rast = NewRasterizer(p.fb, p.depth)

	aspect := float64(p.cfg.Width) / float64(p.cfg.Height)
	p.proj = math3d.Perspective(p.cfg.FOV, 1/aspect, p.cfg.Near, p.cfg.Far)
	p.frustum = NewFrustum(HorizontalFOV(p.cfg.FOV, aspect), p.cfg.FOV, p.cfg.Near, p.cfg.Far)
}

// Resize changes the viewport between frames.
func (p *Pipeline) Resize(width, height int) error {
	if width == p.cfg.Width && height == p.cfg.Height {
		return nil
	}
	cfg := p.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	p.allocate()
	p.tris = p.tris[:0]
	return nil
}

// Config returns the active configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Options returns the active render toggles.
func (p *Pipeline) Options() Options { return p.opts }

// SetOptions replaces the render toggles.
func (p *Pipeline) SetOptions(o Options) { p.opts = o }

// SetRenderMode replaces the render mode.
func (p *Pipeline) SetRenderMode(m RenderMode) { p.opts.Mode = m }

// SetCullMode replaces the cull mode.
func (p *Pipeline) SetCullMode(c CullMode) { p.opts.Cull = c }

// SetLight replaces the directional light.
func (p *Pipeline) SetLight(l Light) { p.cfg.Light = l }

// Framebuffer returns the color buffer of the last Render.
func (p *Pipeline) Framebuffer() *Framebuffer { return p.fb }

// Depth returns the depth buffer of the last Render.
func (p *Pipeline) Depth() *DepthBuffer { return p.depth }

// Frustum returns the view-space clipping frustum.
func (p *Pipeline) Frustum() Frustum { return p.frustum }

// Projection returns the perspective matrix.
func (p *Pipeline) Projection() math3d.Mat4 { return p.proj }

// Triangles returns the triangles queued by the last Update. The slice is
// reused by the next Update.
func (p *Pipeline) Triangles() []ScreenTriangle { return p.tris }

// Stats returns the counters of the last Update.
func (p *Pipeline) Stats() Stats { return p.stats }

// Frame runs Update then Render.
func (p *Pipeline) Frame(cam *Camera, models []Model) {
	p.Update(cam, models)
	p.Render()
}

// Update transforms, culls, clips and projects every face of every model
// into the frame's triangle list.
func (p *Pipeline) Update(cam *Camera, models []Model) {
	p.tris = p.tris[:0]
	p.stats = Stats{}

	view := cam.ViewMatrix()
	for i := range models {
		p.updateModel(view, &models[i])
	}
	p.stats.Triangles = len(p.tris)

	if p.stats.TrianglesDropped > 0 {
		Logger().Debug("triangle budget exceeded",
			"max", p.cfg.MaxTriangles, "dropped", p.stats.TrianglesDropped)
	}
}

func (p *Pipeline) updateModel(view math3d.Mat4, m *Model) {
	if m.Mesh == nil {
		return
	}
	scale, rot, trans := m.Mesh.Transform()
	modelView := view.Mul(math3d.World(scale, rot, trans))

	inside := false
	if bounded, ok := m.Mesh.(BoundedMeshSource); ok {
		p.stats.MeshesTested++
		lo, hi := bounded.Bounds()
		box := NewAABB(lo, hi).Transform(modelView)
		if !p.frustum.IntersectAABB(box) {
			p.stats.MeshesCulled++
			return
		}
		p.stats.MeshesDrawn++
		if inside = p.frustum.ContainsAABB(box); inside {
			p.stats.MeshesInside++
		}
	}

	halfW := float64(p.cfg.Width) / 2
	halfH := float64(p.cfg.Height) / 2

	n := m.Mesh.FaceCount()
	for fi := range n {
		face := m.Mesh.Face(fi)
		p.stats.Faces++

		var v [3]math3d.Vec3
		for k := range 3 {
			v[k] = modelView.MulVec3(face.Positions[k])
		}

		ab := v[1].Sub(v[0]).Normalize()
		ac := v[2].Sub(v[0]).Normalize()
		normal := ab.Cross(ac).Normalize()

		// The camera sits at the view-space origin.
		if p.opts.Cull == CullBackface && normal.Dot(v[0].Negate()) < 0 {
			p.stats.FacesBackfaced++
			continue
		}

		poly := PolygonFromTriangle(
			ClipVertex{Position: v[0], UV: face.UVs[0]},
			ClipVertex{Position: v[1], UV: face.UVs[1]},
			ClipVertex{Position: v[2], UV: face.UVs[2]},
		)
		if !inside {
			if err := p.frustum.ClipPolygon(&poly); err != nil {
				p.stats.ClipErrors++
				Logger().Warn("dropping face", "face", fi, "err", err)
				continue
			}
		}
		if poly.Len() < 3 {
			p.stats.FacesClipped++
			continue
		}
		p.clipped = poly.Triangulate(p.clipped[:0])

		col := ApplyIntensity(face.Color, p.cfg.Light.Intensity(normal))
		for _, ct := range p.clipped {
			if len(p.tris) >= p.cfg.MaxTriangles {
				p.stats.TrianglesDropped++
				continue
			}

			var st ScreenTriangle
			for k := range 3 {
				pr := p.proj.Project(math3d.V4FromV3(ct[k].Position, 1))
				st.V[k] = ScreenVertex{
					X:  int(pr.X*halfW + halfW),
					Y:  int(-pr.Y*halfH + halfH),
					Z:  pr.Z,
					W:  pr.W,
					UV: ct[k].UV,
				}
			}
			st.Color = col
			st.Texture = m.Texture
			p.tris = append(p.tris, st)
		}
	}
}

// Render clears the buffers and rasterizes the queued triangles with the
// active render mode.
func (p *Pipeline) Render() {
	p.fb.Clear(p.cfg.ClearColor)
	p.depth.Clear()
	if p.cfg.GridSpacing > 0 {
		p.fb.DrawGrid(p.cfg.GridSpacing, p.cfg.GridColor)
	}

	mode := p.opts.Mode
	for _, tri := range p.tris {
		switch {
		case mode.Has(ModeTextured):
			p.rast.DrawTextured(tri)
		case mode.Has(ModeFilled):
			p.rast.DrawFilled(tri)
		}
		if mode.Has(ModeWireframe) {
			p.rast.DrawWireframe(tri, p.cfg.WireColor)
		}
		if mode.Has(ModeVertices) {
			p.rast.DrawVertexMarkers(tri, p.cfg.VertexColor)
		}
	}
}
