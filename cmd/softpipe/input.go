package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// action is a presenter-independent input command.
type action int

const (
	actionNone action = iota
	actionQuit
	actionForward
	actionBackward
	actionTurnLeft
	actionTurnRight
	actionLookUp
	actionLookDown
	actionRise
	actionSink
	actionWireframe
	actionFilled
	actionTextured
	actionVertices
	actionCullBackface
	actionCullNone
	actionReset
	actionHUD
)

// held reports whether the action repeats while its key stays down.
func (a action) held() bool {
	switch a {
	case actionTurnLeft, actionTurnRight, actionLookUp, actionLookDown:
		return true
	}
	return false
}

// binding maps key names, as understood by the terminal key matcher, to an
// action.
type binding struct {
	keys   []string
	action action
}

var bindings = []binding{
	{[]string{"q", "esc", "ctrl+c"}, actionQuit},
	{[]string{"w"}, actionForward},
	{[]string{"s"}, actionBackward},
	{[]string{"a", "left"}, actionTurnLeft},
	{[]string{"d", "right"}, actionTurnRight},
	{[]string{"up"}, actionLookUp},
	{[]string{"down"}, actionLookDown},
	{[]string{"space"}, actionRise},
	{[]string{"z"}, actionSink},
	{[]string{"1"}, actionWireframe},
	{[]string{"2"}, actionFilled},
	{[]string{"3"}, actionTextured},
	{[]string{"4"}, actionVertices},
	{[]string{"c"}, actionCullBackface},
	{[]string{"x"}, actionCullNone},
	{[]string{"r"}, actionReset},
	{[]string{"?", "shift+/"}, actionHUD},
}

const (
	speedStep = 1.0  // units/s added per key press
	maxSpeed  = 10.0 // units/s
	turnRate  = 1.5  // rad/s while a turn key is held
	climbStep = 0.25 // units per rise/sink press

	// Key releases are unreliable in terminals, so held turn rates decay
	// toward zero every frame.
	turnDecay = 0.9
)

// springAxis eases a value toward a target with a critically damped spring.
type springAxis struct {
	value, velocity, target float64
	spring                  harmonica.Spring
}

func newSpringAxis(fps int) springAxis {
	return springAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *springAxis) step() {
	a.value, a.velocity = a.spring.Update(a.value, a.velocity, a.target)
}

// controller turns actions into camera motion and pipeline option changes.
// It is owned by the frame loop.
type controller struct {
	cam  *render.Camera
	home math3d.Vec3
	fps  int

	speed, yaw, pitch springAxis

	showHUD bool
}

func newController(cam *render.Camera, fps int) *controller {
	c := &controller{cam: cam, home: cam.Position, fps: fps, showHUD: true}
	c.resetAxes()
	return c
}

func (c *controller) resetAxes() {
	c.speed = newSpringAxis(c.fps)
	c.yaw = newSpringAxis(c.fps)
	c.pitch = newSpringAxis(c.fps)
}

// apply handles a key press. It reports false when the viewer should quit.
func (c *controller) apply(a action, p *render.Pipeline) bool {
	switch a {
	case actionQuit:
		return false
	case actionForward:
		c.speed.target = min(c.speed.target+speedStep, maxSpeed)
	case actionBackward:
		c.speed.target = max(c.speed.target-speedStep, -maxSpeed)
	case actionTurnLeft:
		c.yaw.target = -turnRate
	case actionTurnRight:
		c.yaw.target = turnRate
	case actionLookUp:
		c.pitch.target = turnRate
	case actionLookDown:
		c.pitch.target = -turnRate
	case actionRise:
		c.cam.MoveUp(climbStep)
	case actionSink:
		c.cam.MoveUp(-climbStep)
	case actionWireframe:
		p.SetRenderMode(p.Options().Mode.Toggle(render.ModeWireframe))
	case actionFilled:
		p.SetRenderMode(p.Options().Mode.Toggle(render.ModeFilled))
	case actionTextured:
		p.SetRenderMode(p.Options().Mode.Toggle(render.ModeTextured))
	case actionVertices:
		p.SetRenderMode(p.Options().Mode.Toggle(render.ModeVertices))
	case actionCullBackface:
		p.SetCullMode(render.CullBackface)
	case actionCullNone:
		p.SetCullMode(render.CullNone)
	case actionReset:
		c.cam.SetPosition(c.home)
		c.cam.SetRotation(0, 0)
		c.resetAxes()
	case actionHUD:
		c.showHUD = !c.showHUD
	}
	return true
}

// release handles a key release where the presenter reports one.
func (c *controller) release(a action) {
	switch a {
	case actionTurnLeft, actionTurnRight:
		c.yaw.target = 0
	case actionLookUp, actionLookDown:
		c.pitch.target = 0
	}
}

// step advances the springs one frame and moves the camera by dt seconds.
func (c *controller) step(dt float64) {
	c.speed.step()
	c.yaw.step()
	c.pitch.step()
	c.yaw.target *= turnDecay
	c.pitch.target *= turnDecay

	c.cam.Rotate(c.yaw.value*dt, c.pitch.value*dt)
	c.cam.SetForwardVelocity(c.speed.value)
	c.cam.Update(dt)
}
