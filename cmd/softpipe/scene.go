package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/render"
)

// scene is the loaded model plus the camera looking at it.
type scene struct {
	mesh   *models.Mesh
	models []render.Model
	camera *render.Camera
}

// loadScene loads the model named by the options, or the built-in cube, and
// places it in front of a camera at the origin.
func loadScene(o *options) (*scene, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	if o.model == "" {
		mesh = models.NewCube()
	} else {
		mesh, err = models.Load(o.model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh.FitToUnit()
	}

	switch {
	case o.texture != "":
		tex, err := render.LoadTexture(o.texture)
		if err != nil {
			return nil, err
		}
		mesh.Texture = tex
	case mesh.Texture == nil:
		mesh.Texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	mesh.Translation = math3d.V3(0, 0, o.distance)
	if o.model == "" {
		mesh.Rotation = math3d.V3(0.5, 0.5, 0)
	}

	slog.Info("model loaded",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"faces", mesh.FaceCount(),
		"texture", fmt.Sprintf("%dx%d", mesh.Texture.Width, mesh.Texture.Height))

	return &scene{
		mesh:   mesh,
		models: []render.Model{mesh.Model()},
		camera: render.NewCamera(),
	}, nil
}

// newPipeline builds a pipeline for a width x height viewport from the
// shared options.
func newPipeline(o *options, width, height int) (*render.Pipeline, error) {
	cfg := render.DefaultConfig()
	cfg.Width, cfg.Height = width, height
	cfg.FOV = o.fov * math.Pi / 180
	cfg.MaxTriangles = o.maxTris
	cfg.GridSpacing = o.grid

	p, err := render.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if o.noCull {
		p.SetCullMode(render.CullNone)
	}
	return p, nil
}
