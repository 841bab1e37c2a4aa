package render

import (
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// maxPitch keeps the view direction away from straight up or down,
// where LookAt has no usable up vector.
const maxPitch = math.Pi/2 - 0.01

// Camera is a free-flying first-person camera. The caller owns it and
// passes it to the pipeline each frame; all mutation happens between
// frames.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Direction is the unit view direction derived from Yaw and Pitch.
	// It is refreshed by Target, ViewMatrix and Update.
	Direction math3d.Vec3

	// Orientation (radians). Positive yaw turns right, positive pitch looks up.
	Yaw   float64
	Pitch float64

	// ForwardVelocity is applied along Direction by Update, in units per second.
	ForwardVelocity float64

	// view caches the matrix for the pose it was built from, so direct
	// writes to Position, Yaw or Pitch are picked up on the next call.
	view     math3d.Mat4
	viewPose cameraPose
	viewOK   bool
}

type cameraPose struct {
	position   math3d.Vec3
	yaw, pitch float64
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{Direction: math3d.Forward()}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets yaw and pitch in radians. Pitch is clamped.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
}

// AddYaw turns the camera left or right.
func (c *Camera) AddYaw(delta float64) {
	c.Yaw += delta
}

// AddPitch tilts the camera up or down.
func (c *Camera) AddPitch(delta float64) {
	c.Pitch = clampPitch(c.Pitch + delta)
}

// Rotate applies yaw and pitch deltas in one call.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.AddYaw(deltaYaw)
	c.AddPitch(deltaPitch)
}

// SetForwardVelocity sets the speed used by Update.
func (c *Camera) SetForwardVelocity(v float64) {
	c.ForwardVelocity = v
}

func clampPitch(p float64) float64 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}

// Forward returns the unit view direction for the current yaw and pitch.
func (c *Camera) Forward() math3d.Vec3 {
	rot := math3d.RotateY(c.Yaw).Mul(math3d.RotateX(-clampPitch(c.Pitch)))
	return rot.MulVec3Dir(math3d.Forward()).Normalize()
}

// Right returns the horizontal right vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Up().Cross(c.Forward()).Normalize()
}

// Target returns the point one unit ahead of the camera and refreshes
// Direction.
func (c *Camera) Target() math3d.Vec3 {
	c.Direction = c.Forward()
	return c.Position.Add(c.Direction)
}

// ViewMatrix returns the world-to-camera matrix for the current position,
// yaw and pitch. The zero Camera is valid.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	pose := cameraPose{position: c.Position, yaw: c.Yaw, pitch: c.Pitch}
	if !c.viewOK || pose != c.viewPose {
		c.view = math3d.LookAt(c.Position, c.Target(), math3d.Up())
		c.viewPose = pose
		c.viewOK = true
	}
	return c.view
}

// MoveForward moves the camera along its view direction (backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight strafes the camera (left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera along world Y (down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Update advances the camera by dt seconds of forward velocity.
func (c *Camera) Update(dt float64) {
	c.Direction = c.Forward()
	if c.ForwardVelocity == 0 {
		return
	}
	c.Position = c.Position.Add(c.Direction.Scale(c.ForwardVelocity * dt))
}

// LookAt points the camera at a world position.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math3d.Vec3{}) {
		return
	}

	c.Pitch = clampPitch(math.Asin(dir.Y))
	c.Yaw = math.Atan2(dir.X, dir.Z)
	c.Direction = c.Forward()
}
