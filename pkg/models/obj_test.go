package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

const quadOBJ = `# a unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f -4/-4/1 -2/-2/1 -1/-1/1
`

func TestReadOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 || len(m.TexCoords) != 4 {
		t.Fatalf("got %d vertices, %d uvs", m.VertexCount(), len(m.TexCoords))
	}
	if m.FaceCount() != 2 {
		t.Fatalf("got %d faces, want 2", m.FaceCount())
	}

	// 1-based on disk, 0-based in memory.
	if m.Faces[0].V != [3]int{0, 1, 2} || m.Faces[0].UV != [3]int{0, 1, 2} {
		t.Errorf("face 0 = %+v", m.Faces[0])
	}
	// Negative indices count from the end.
	if m.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("face 1 = %+v", m.Faces[1])
	}

	f := m.Face(1)
	if f.UVs[2] != math3d.V2(0, 1) {
		t.Errorf("face 1 uv = %v", f.UVs)
	}
	if m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds max = %v", m.BoundsMax)
	}
}

func TestReadOBJFaceForms(t *testing.T) {
	tests := []struct {
		name  string
		face  string
		faces int
		uv    int
	}{
		{"positions only", "f 1 2 3", 1, NoUV},
		{"with normals", "f 1//1 2//1 3//1", 1, NoUV},
		{"with uvs", "f 1/1 2/2 3/3", 1, 0},
		{"quad fans", "f 1/1 2/2 3/3 4/4", 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 1 1\nvt 0 1\n" + tc.face + "\n"
			m, err := ReadOBJ(strings.NewReader(src))
			if err != nil {
				t.Fatal(err)
			}
			if m.FaceCount() != tc.faces {
				t.Fatalf("got %d faces, want %d", m.FaceCount(), tc.faces)
			}
			if m.Faces[0].UV[0] != tc.uv {
				t.Errorf("uv index = %d, want %d", m.Faces[0].UV[0], tc.uv)
			}
		})
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedOBJ},
		{"bad float", "v 1 x 3\n", ErrMalformedOBJ},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrMalformedOBJ},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrIndexOutOfRange},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformedOBJ},
		{"empty texcoord", "vt\n", ErrMalformedOBJ},
		{"bad texcoord", "vt 0.5 y\n", ErrMalformedOBJ},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tc.src))
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadOBJTexCoordForms(t *testing.T) {
	src := "vt 0.25\nvt 0.5 0.75\nvt 1 0.5 0\n"
	m, err := ReadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	want := []math3d.Vec2{math3d.V2(0.25, 0), math3d.V2(0.5, 0.75), math3d.V2(1, 0.5)}
	if len(m.TexCoords) != len(want) {
		t.Fatalf("got %d texcoords, want %d", len(m.TexCoords), len(want))
	}
	for i, uv := range want {
		if m.TexCoords[i] != uv {
			t.Errorf("texcoord %d = %v, want %v", i, m.TexCoords[i], uv)
		}
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/model.obj"); err == nil {
		t.Error("expected error for missing file")
	}
}
