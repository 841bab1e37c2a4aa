package models

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// GLTFLoader loads glTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FitToUnit recenters and rescales the model to the cube's size.
	FitToUnit bool
	// LoadTexture decodes the first usable image as the mesh texture.
	LoadTexture bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FitToUnit:   true,
		LoadTexture: true,
	}
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a glTF or GLB file and returns a Mesh.
//
// glTF is right-handed with counter-clockwise front faces and texture v
// growing downwards. Positions are mirrored on Z, winding is reversed and
// v is flipped so the mesh matches the cube and OBJ conventions.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: no triangle primitives", path)
	}

	if l.LoadTexture {
		tex, err := loadTexture(doc, filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		mesh.Texture = tex
	}

	if l.FitToUnit {
		mesh.FitToUnit()
	} else {
		mesh.CalculateBounds()
	}
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		color := materialColor(doc, prim.Material)
		baseVertex := len(mesh.Vertices)
		baseUV := len(mesh.TexCoords)

		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), -float64(p[2])))
		}
		for _, t := range uvs {
			mesh.TexCoords = append(mesh.TexCoords, math3d.V2(float64(t[0]), 1-float64(t[1])))
		}

		for i := 0; i+2 < len(indices); i += 3 {
			// swapped: counter-clockwise -> clockwise
			corner := [3]int{int(indices[i]), int(indices[i+2]), int(indices[i+1])}
			f := Face{UV: [3]int{NoUV, NoUV, NoUV}, Color: color}
			for k, c := range corner {
				if c >= len(positions) {
					return fmt.Errorf("index %d of %d: %w", c, len(positions), ErrIndexOutOfRange)
				}
				f.V[k] = baseVertex + c
				if c < len(uvs) {
					f.UV[k] = baseUV + c
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return nil
}

// materialColor returns the base color factor of the material, or white.
func materialColor(doc *gltf.Document, idx *int) render.Color {
	if idx == nil || *idx >= len(doc.Materials) {
		return render.ColorWhite
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return render.ColorWhite
	}
	c := pbr.BaseColorFactor
	return render.Color{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: uint8(c[3]*255 + 0.5),
	}
}

// loadTexture decodes the first texture whose image can be read, either
// from an embedded buffer view or a file next to the document. A document
// without usable images yields a nil texture.
func loadTexture(doc *gltf.Document, dir string) (*render.Texture, error) {
	for _, t := range doc.Textures {
		if t.Source == nil || *t.Source >= len(doc.Images) {
			continue
		}
		data, err := imageData(doc, doc.Images[*t.Source], dir)
		if err != nil || len(data) == 0 {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}

		tex := render.TextureFromImage(img)
		if t.Sampler != nil && *t.Sampler < len(doc.Samplers) {
			s := doc.Samplers[*t.Sampler]
			tex.WrapU = wrapMode(s.WrapS)
			tex.WrapV = wrapMode(s.WrapT)
			if s.MagFilter == gltf.MagLinear {
				tex.FilterMode = render.FilterBilinear
			}
		}
		return tex, nil
	}
	return nil, nil
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	if img.BufferView != nil {
		return modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	}
	if img.URI == "" || img.IsEmbeddedResource() {
		return img.MarshalData()
	}
	return os.ReadFile(filepath.Join(dir, img.URI))
}

func wrapMode(w gltf.WrappingMode) render.WrapMode {
	if w == gltf.WrapClampToEdge {
		return render.WrapClamp
	}
	return render.WrapRepeat
}
