package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/softpipe/pkg/render"
)

// errQuit stops the errgroup when the user asks to leave.
var errQuit = errors.New("quit")

// inputEvent is what the input reader hands the frame loop. Resizes carry
// the new terminal size in cells.
type inputEvent struct {
	action     action
	released   bool
	cols, rows int
}

// runTerminal renders the scene into the terminal with half-block cells
// until the user quits or ctx is canceled.
func runTerminal(ctx context.Context, o *options) error {
	sc, err := loadScene(o)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	w, h := render.TerminalViewport(cols, rows)
	p, err := newPipeline(o, w, h)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			slog.Warn("terminal shutdown", "err", err)
		}
	}()

	slog.Info("terminal presenter started", "cols", cols, "rows", rows, "viewport", fmt.Sprintf("%dx%d", w, h))

	events := make(chan inputEvent, 32)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readInput(ctx, term.Events(), events)
	})
	g.Go(func() error {
		return frameLoop(ctx, o, term, uv.Rect(0, 0, cols, rows), p, sc, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// readInput translates terminal events into inputEvents. It returns errQuit
// on a quit key and nil once in is closed.
func readInput(ctx context.Context, in <-chan uv.Event, out chan<- inputEvent) error {
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-in:
			if !ok {
				return nil
			}
			ev = e
		}

		var ie inputEvent
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			ie = inputEvent{cols: ev.Width, rows: ev.Height}
		case uv.KeyPressEvent:
			ie.action = matchKey(ev.MatchString)
		case uv.KeyReleaseEvent:
			ie = inputEvent{action: matchKey(ev.MatchString), released: true}
		default:
			continue
		}

		if ie.action == actionQuit {
			return errQuit
		}
		if ie.action == actionNone && ie.cols == 0 {
			continue
		}

		select {
		case out <- ie:
		case <-ctx.Done():
			return nil
		}
	}
}

// matchKey returns the first binding whose keys match.
func matchKey(match func(...string) bool) action {
	for _, b := range bindings {
		if match(b.keys...) {
			return b.action
		}
	}
	return actionNone
}

func frameLoop(ctx context.Context, o *options, term *uv.Terminal, area uv.Rectangle, p *render.Pipeline, sc *scene, events <-chan inputEvent) error {
	ctrl := newController(sc.camera, o.fps)
	now := time.Now()
	status := newHUD(sc.mesh, now)

	ticker := time.NewTicker(time.Second / time.Duration(o.fps))
	defer ticker.Stop()

	last := now
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.cols > 0 {
				term.Erase()
				term.Resize(ev.cols, ev.rows)
				area = uv.Rect(0, 0, ev.cols, ev.rows)
				if err := p.Resize(render.TerminalViewport(ev.cols, ev.rows)); err != nil {
					return err
				}
				continue
			}
			if ev.released {
				ctrl.release(ev.action)
				continue
			}
			if !ctrl.apply(ev.action, p) {
				return errQuit
			}
			continue
		case now = <-ticker.C:
		}

		// Clamp so a stalled terminal does not teleport the camera.
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now

		ctrl.step(dt)
		p.Frame(sc.camera, sc.models)

		p.Framebuffer().Draw(term, area)
		status.tick(now)
		if ctrl.showHUD {
			status.draw(term, area, p.Options(), p.Stats())
		}
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		st := p.Stats()
		slog.Debug("frame",
			"triangles", st.Triangles,
			"backfaced", st.FacesBackfaced,
			"clipped", st.FacesClipped,
			"dropped", st.TrianglesDropped)
	}
}
