package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/taigrr/softpipe/pkg/render"
)

// windowKey binds an ebiten key to an action. Order matters: actions of
// one tick are applied top to bottom.
type windowKey struct {
	key    ebiten.Key
	action action
}

var windowKeys = []windowKey{
	{ebiten.KeyQ, actionQuit},
	{ebiten.KeyEscape, actionQuit},
	{ebiten.KeyW, actionForward},
	{ebiten.KeyS, actionBackward},
	{ebiten.KeyA, actionTurnLeft},
	{ebiten.KeyArrowLeft, actionTurnLeft},
	{ebiten.KeyD, actionTurnRight},
	{ebiten.KeyArrowRight, actionTurnRight},
	{ebiten.KeyArrowUp, actionLookUp},
	{ebiten.KeyArrowDown, actionLookDown},
	{ebiten.KeySpace, actionRise},
	{ebiten.KeyZ, actionSink},
	{ebiten.KeyDigit1, actionWireframe},
	{ebiten.KeyDigit2, actionFilled},
	{ebiten.KeyDigit3, actionTextured},
	{ebiten.KeyDigit4, actionVertices},
	{ebiten.KeyC, actionCullBackface},
	{ebiten.KeyX, actionCullNone},
	{ebiten.KeyR, actionReset},
	{ebiten.KeySlash, actionHUD},
}

// windowInput returns this tick's presses and releases in binding order.
// Held actions repeat while their key is down.
func windowInput(justPressed, down, justReleased func(ebiten.Key) bool) (pressed, released []action) {
	for _, k := range windowKeys {
		switch {
		case justPressed(k.key), k.action.held() && down(k.key):
			pressed = append(pressed, k.action)
		case justReleased(k.key):
			released = append(released, k.action)
		}
	}
	return pressed, released
}

func newWindowCmd(o *options) *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "window [model]",
		Short: "Render in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.setModel(args)
			if err := o.setupLogging(os.Stderr); err != nil {
				return err
			}
			return runWindow(cmd.Context(), o, scale)
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 2, "window pixels per framebuffer pixel")
	return cmd
}

func runWindow(ctx context.Context, o *options, scale int) error {
	sc, err := loadScene(o)
	if err != nil {
		return err
	}
	p, err := newPipeline(o, o.width, o.height)
	if err != nil {
		return err
	}

	g := &windowGame{
		ctx:   ctx,
		p:     p,
		sc:    sc,
		ctrl:  newController(sc.camera, o.fps),
		dt:    1 / float64(o.fps),
		frame: ebiten.NewImage(o.width, o.height),
	}

	ebiten.SetWindowTitle("softpipe - " + sc.mesh.Name)
	ebiten.SetWindowSize(o.width*max(scale, 1), o.height*max(scale, 1))
	ebiten.SetTPS(o.fps)

	slog.Info("window presenter started", "width", o.width, "height", o.height, "scale", scale)
	return ebiten.RunGame(g)
}

// windowGame drives the pipeline from ebiten's fixed-rate update loop.
type windowGame struct {
	ctx   context.Context
	p     *render.Pipeline
	sc    *scene
	ctrl  *controller
	dt    float64
	frame *ebiten.Image
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	pressed, released := windowInput(inpututil.IsKeyJustPressed, ebiten.IsKeyPressed, inpututil.IsKeyJustReleased)
	for _, a := range released {
		g.ctrl.release(a)
	}
	for _, a := range pressed {
		if !g.ctrl.apply(a, g.p) {
			return ebiten.Termination
		}
	}

	g.ctrl.step(g.dt)
	g.p.Frame(g.sc.camera, g.sc.models)
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.frame.WritePixels(g.p.Framebuffer().ToImage().Pix)
	screen.DrawImage(g.frame, nil)
	if g.ctrl.showHUD {
		ebitenutil.DebugPrint(screen, statusLine(g.sc, g.p))
	}
}

func (g *windowGame) Layout(int, int) (int, int) {
	cfg := g.p.Config()
	return cfg.Width, cfg.Height
}

// statusLine is the unstyled HUD used where terminal styling is unavailable.
func statusLine(sc *scene, p *render.Pipeline) string {
	h := hud{name: sc.mesh.Name, faces: sc.mesh.FaceCount(), fps: ebiten.ActualFPS()}
	return h.plain(p.Options(), p.Stats())
}

