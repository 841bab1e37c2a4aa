package render

import (
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func vecNear(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	if !vecNear(c.Forward(), math3d.V3(0, 0, 1)) {
		t.Errorf("Forward = %v, want +Z", c.Forward())
	}
	if !vecNear(c.Right(), math3d.V3(1, 0, 0)) {
		t.Errorf("Right = %v, want +X", c.Right())
	}
	if !vecNear(c.Target(), math3d.V3(0, 0, 1)) {
		t.Errorf("Target = %v", c.Target())
	}
	if got := c.ViewMatrix(); got != math3d.Identity() {
		t.Errorf("default view = %v, want identity", got)
	}
}

func TestCameraYawPitch(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		want       math3d.Vec3
	}{
		{"turn right", math.Pi / 2, 0, math3d.V3(1, 0, 0)},
		{"turn around", math.Pi, 0, math3d.V3(0, 0, -1)},
		{"look up", 0, math.Pi / 4, math3d.V3(0, math.Sqrt2/2, math.Sqrt2/2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.AddYaw(tc.yaw)
			c.AddPitch(tc.pitch)
			if got := c.Forward(); !vecNear(got, tc.want) {
				t.Errorf("Forward = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera()
	c.AddPitch(10)
	if c.Pitch != maxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.SetRotation(0, -10)
	if c.Pitch != -maxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -maxPitch)
	}
}

func TestCameraMovement(t *testing.T) {
	c := NewCamera()
	c.MoveForward(2)
	c.MoveRight(1)
	c.MoveUp(3)
	if !vecNear(c.Position, math3d.V3(1, 3, 2)) {
		t.Errorf("Position = %v, want (1,3,2)", c.Position)
	}

	c = NewCamera()
	c.SetForwardVelocity(4)
	c.Update(0.5)
	if !vecNear(c.Position, math3d.V3(0, 0, 2)) {
		t.Errorf("after Update Position = %v, want (0,0,2)", c.Position)
	}
	if !vecNear(c.Direction, math3d.V3(0, 0, 1)) {
		t.Errorf("Direction = %v", c.Direction)
	}
}

func TestCameraViewMatrixTracksMovement(t *testing.T) {
	c := NewCamera()
	_ = c.ViewMatrix()
	c.SetPosition(math3d.V3(0, 0, -5))

	p := c.ViewMatrix().MulVec3(math3d.V3(0, 0, 0))
	if !vecNear(p, math3d.V3(0, 0, 5)) {
		t.Errorf("origin in view space = %v, want (0,0,5)", p)
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewCamera()
	c.SetPosition(math3d.V3(0, 0, -5))
	c.LookAt(math3d.V3(5, 0, -5))
	if !vecNear(c.Direction, math3d.V3(1, 0, 0)) {
		t.Errorf("Direction = %v, want +X", c.Direction)
	}

	before := c.Direction
	c.LookAt(c.Position)
	if c.Direction != before {
		t.Error("LookAt own position changed the direction")
	}
}

func TestCameraViewFollowsFieldWrites(t *testing.T) {
	c := NewCamera()
	_ = c.ViewMatrix()

	c.Position = math3d.V3(0, 0, 3)
	if p := c.ViewMatrix().MulVec3(math3d.V3(0, 0, 0)); !vecNear(p, math3d.V3(0, 0, -3)) {
		t.Errorf("after Position write origin maps to %v, want (0,0,-3)", p)
	}

	c.Yaw = math.Pi / 2
	if p := c.ViewMatrix().MulVec3(math3d.V3(1, 0, 3)); !vecNear(p, math3d.V3(0, 0, 1)) {
		t.Errorf("after Yaw write point maps to %v, want (0,0,1)", p)
	}

	c.Yaw = 0
	c.Pitch = 10
	if p := c.ViewMatrix().MulVec3(math3d.V3(0, 1, 3)); p.Z <= 0.99 {
		t.Errorf("after Pitch write point above maps to %v, want ahead", p)
	}
}

func TestCameraZeroValue(t *testing.T) {
	var c Camera
	if got := c.ViewMatrix(); got != math3d.Identity() {
		t.Errorf("zero camera view = %v, want identity", got)
	}
}
