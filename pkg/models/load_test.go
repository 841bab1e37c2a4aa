package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.OBJ")
	if err := os.WriteFile(obj, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(obj)
	if err != nil {
		t.Fatal(err)
	}
	if m.FaceCount() != 1 {
		t.Errorf("faces = %d, want 1", m.FaceCount())
	}

	if _, err := Load(filepath.Join(dir, "scene.fbx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
