// softpipe - software 3D pipeline viewer
// Renders OBJ, glTF and GLB models (or a built-in cube) on the CPU and
// shows them in the terminal, in a desktop window or as a PNG snapshot.
//
// Controls:
//
//	W/S         - Speed up / slow down along the view direction
//	A/D, ←/→    - Turn left/right
//	↑/↓         - Look up/down
//	Space/Z     - Rise/sink
//	1-4         - Toggle wireframe, filled, textured, vertex markers
//	C/X         - Backface culling on/off
//	R           - Reset camera
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/softpipe/pkg/render"
)

var version = "dev"

var errInvalidFlag = errors.New("invalid flag")

// options holds the flags shared by every command.
type options struct {
	model       string
	texture     string
	width       int
	height      int
	fps         int
	fov         float64
	distance    float64
	maxTris     int
	grid        int
	noCull      bool
	logLevel    string
	logFile     string
	closeLogger func() error
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "softpipe [model.obj|model.gltf|model.glb]",
		Short: "Render 3D models with a software pipeline",
		Long: "softpipe transforms, clips and rasterizes meshes on the CPU.\n" +
			"Without a model it shows a textured cube. The root command renders in the terminal.",
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return o.validate()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if o.closeLogger != nil {
				return o.closeLogger()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o.setModel(args)
			// The alternate screen owns stdout, so logs go to --log-file or nowhere.
			if err := o.setupLogging(io.Discard); err != nil {
				return err
			}
			return runTerminal(cmd.Context(), o)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.texture, "texture", "t", "", "texture image (PNG, JPEG, BMP, TIFF or WebP)")
	flags.IntVar(&o.width, "width", 320, "viewport width in pixels (window and snapshot)")
	flags.IntVar(&o.height, "height", 240, "viewport height in pixels (window and snapshot)")
	flags.IntVar(&o.fps, "fps", 30, "target frames per second")
	flags.Float64Var(&o.fov, "fov", 60, "vertical field of view in degrees")
	flags.Float64Var(&o.distance, "distance", 5, "distance from the camera to the model")
	flags.IntVar(&o.maxTris, "max-triangles", render.DefaultConfig().MaxTriangles, "per-frame triangle budget")
	flags.IntVar(&o.grid, "grid", 0, "background dot grid spacing in pixels, 0 disables")
	flags.BoolVar(&o.noCull, "no-cull", false, "start with backface culling disabled")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&o.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(newWindowCmd(o), newSnapshotCmd(o))
	return root
}

// validate rejects flag values that would break the frame loop.
func (o *options) validate() error {
	if o.fps <= 0 {
		return fmt.Errorf("%w: --fps must be positive, got %d", errInvalidFlag, o.fps)
	}
	return nil
}

func (o *options) setModel(args []string) {
	if len(args) > 0 {
		o.model = args[0]
	}
}

// setupLogging installs the process logger. Logs go to --log-file when set,
// otherwise to fallback.
func (o *options) setupLogging(fallback io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}

	w := fallback
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		o.closeLogger = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return nil
}
