package main

import (
	"fmt"
	"log/slog"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(o *options) *cobra.Command {
	var (
		out   string
		scale int
	)
	cmd := &cobra.Command{
		Use:   "snapshot [model]",
		Short: "Render a single frame to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.setModel(args)
			if err := o.setupLogging(os.Stderr); err != nil {
				return err
			}

			sc, err := loadScene(o)
			if err != nil {
				return err
			}
			p, err := newPipeline(o, o.width, o.height)
			if err != nil {
				return err
			}

			p.Frame(sc.camera, sc.models)
			if err := p.Framebuffer().SavePNG(out, scale); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			slog.Debug("snapshot written", "path", out, "scale", scale)

			_, err = lipgloss.Fprintln(cmd.OutOrStdout(), summary(sc.mesh, p.Stats(), out))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "softpipe.png", "output PNG path")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscale factor")
	return cmd
}
