package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func vec3Near(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestIdentity(t *testing.T) {
	vs := []Vec4{
		V4(0, 0, 0, 1),
		V4(1, -2, 3, 1),
		V4(-7.5, 0.25, 100, 0),
	}
	for _, v := range vs {
		if got := Identity().MulVec4(v); got != v {
			t.Errorf("Identity().MulVec4(%v) = %v", v, got)
		}
	}

	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.4))
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*M = %v, want %v", got, m)
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M*I = %v, want %v", got, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	got := m.MulVec3(V3(1, 1, 1))
	if !vec3Near(got, V3(2, 3, 4)) {
		t.Errorf("Translate point = %v, want (2,3,4)", got)
	}
	if got := m.MulVec3Dir(V3(1, 1, 1)); !vec3Near(got, V3(1, 1, 1)) {
		t.Errorf("Translate direction = %v, want (1,1,1)", got)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"X quarter turn", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"Y quarter turn", RotateY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"Z quarter turn", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"zero angle", RotateY(0), V3(1, 2, 3), V3(1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulVec3(tt.in); !vec3Near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulNotCommutative(t *testing.T) {
	a := Translate(V3(5, 0, 0))
	b := RotateZ(math.Pi / 2)
	p := V3(1, 0, 0)

	ab := a.Mul(b).MulVec3(p) // rotate then translate
	ba := b.Mul(a).MulVec3(p) // translate then rotate
	if !vec3Near(ab, V3(5, 1, 0)) {
		t.Errorf("T*R = %v, want (5,1,0)", ab)
	}
	if !vec3Near(ba, V3(0, 6, 0)) {
		t.Errorf("R*T = %v, want (0,6,0)", ba)
	}
}

func TestMulAssociative(t *testing.T) {
	a := RotateX(0.3)
	b := Translate(V3(1, -2, 4))
	c := Scale(V3(2, 3, 0.5))

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	for i := range left {
		if !near(left[i], right[i]) {
			t.Fatalf("(AB)C != A(BC) at %d: %v vs %v", i, left[i], right[i])
		}
	}
}

func TestWorldOrder(t *testing.T) {
	// scale first, then rotate, then translate
	m := World(V3(2, 2, 2), V3(0, math.Pi/2, 0), V3(0, 0, 5))
	got := m.MulVec3(V3(0, 0, 1))
	if !vec3Near(got, V3(2, 0, 5)) {
		t.Errorf("World point = %v, want (2,0,5)", got)
	}
}

func TestLookAt(t *testing.T) {
	t.Run("canonical", func(t *testing.T) {
		view := LookAt(V3(0, 0, 0), V3(0, 0, 1), Up())
		p := V3(1, 2, 3)
		if got := view.MulVec3(p); !vec3Near(got, p) {
			t.Errorf("canonical view moved point: %v", got)
		}
	})

	t.Run("offset eye", func(t *testing.T) {
		view := LookAt(V3(0, 0, -5), V3(0, 0, 0), Up())
		if got := view.MulVec3(V3(0, 0, 0)); !vec3Near(got, V3(0, 0, 5)) {
			t.Errorf("target in view space = %v, want (0,0,5)", got)
		}
	})

	t.Run("looking right", func(t *testing.T) {
		view := LookAt(V3(0, 0, 0), V3(1, 0, 0), Up())
		got := view.MulVec3(V3(3, 0, 0))
		if !vec3Near(got, V3(0, 0, 3)) {
			t.Errorf("point ahead = %v, want (0,0,3)", got)
		}
	})
}

func TestPerspectiveDepthRange(t *testing.T) {
	const znear, zfar = 0.1, 100.0
	proj := Perspective(math.Pi/3, 480.0/640.0, znear, zfar)

	pn := proj.Project(V4(0, 0, znear, 1))
	pf := proj.Project(V4(0, 0, zfar, 1))
	if !near(pn.Z, 0) {
		t.Errorf("near plane z = %v, want 0", pn.Z)
	}
	if math.Abs(pf.Z-1) > 1e-6 {
		t.Errorf("far plane z = %v, want 1", pf.Z)
	}
	if pn.Z == pf.Z {
		t.Fatal("near and far project to the same depth")
	}

	prev := pn.Z
	for z := 0.5; z < zfar; z *= 2 {
		p := proj.Project(V4(0, 0, z, 1))
		if p.Z <= prev {
			t.Errorf("depth not monotonic at z=%v: %v <= %v", z, p.Z, prev)
		}
		if p.W != z {
			t.Errorf("W = %v, want view depth %v", p.W, z)
		}
		prev = p.Z
	}
}

func TestProjectZeroW(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)
	v := V4(2, 3, 0, 1)
	got := proj.Project(v)
	if got.W != 0 {
		t.Fatalf("W = %v, want 0", got.W)
	}
	if math.IsInf(got.X, 0) || math.IsNaN(got.X) || math.IsInf(got.Y, 0) || math.IsNaN(got.Y) {
		t.Errorf("Project divided by zero: %v", got)
	}
	want := proj.MulVec4(v)
	if got != want {
		t.Errorf("Project with W=0 = %v, want undivided %v", got, want)
	}
}
