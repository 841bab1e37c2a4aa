package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// ErrMalformedOBJ is returned for OBJ lines that cannot be parsed.
var ErrMalformedOBJ = errors.New("malformed obj")

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// ReadOBJ parses the v, vt and f statements of an OBJ stream. Face
// indices are 1-based on disk (negative values count back from the end)
// and are stored 0-based. Polygons with more than three corners are fanned
// into triangles. Every face starts white.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := NewMesh("")
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v [3]float64
			v, err = parseFloats3(fields[1:])
			m.Vertices = append(m.Vertices, math3d.V3(v[0], v[1], v[2]))
		case "vt":
			var u, w float64
			u, w, err = parseTexCoord(fields[1:])
			m.TexCoords = append(m.TexCoords, math3d.V2(u, w))
		case "f":
			err = m.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	m.CalculateBounds()
	return m, nil
}

func parseFloats3(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("%w: want 3 coordinates, got %d", ErrMalformedOBJ, len(fields))
	}
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, fmt.Errorf("%w: %w", ErrMalformedOBJ, err)
		}
		out[i] = f
	}
	return out, nil
}

// parseTexCoord reads "u [v [w]]"; a missing v is 0.
func parseTexCoord(fields []string) (float64, float64, error) {
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("%w: texture coordinate needs u", ErrMalformedOBJ)
	}
	var uv [2]float64
	for i := range min(len(fields), 2) {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrMalformedOBJ, err)
		}
		uv[i] = f
	}
	return uv[0], uv[1], nil
}

// parseFace handles "v", "v/vt", "v//vn" and "v/vt/vn" corners.
func (m *Mesh) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: face needs 3 corners, got %d", ErrMalformedOBJ, len(fields))
	}

	vs := make([]int, len(fields))
	uvs := make([]int, len(fields))
	for i, corner := range fields {
		parts := strings.Split(corner, "/")

		v, err := resolveIndex(parts[0], len(m.Vertices))
		if err != nil {
			return err
		}
		vs[i] = v

		uvs[i] = NoUV
		if len(parts) > 1 && parts[1] != "" {
			t, err := resolveIndex(parts[1], len(m.TexCoords))
			if err != nil {
				return err
			}
			uvs[i] = t
		}
	}

	for i := 1; i+1 < len(vs); i++ {
		m.Faces = append(m.Faces, Face{
			V:     [3]int{vs[0], vs[i], vs[i+1]},
			UV:    [3]int{uvs[0], uvs[i], uvs[i+1]},
			Color: render.ColorWhite,
		})
	}
	return nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based index checked against n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedOBJ, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("%w: index 0", ErrMalformedOBJ)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s of %d", ErrIndexOutOfRange, s, n)
	}
	return i, nil
}
