package cmd

import (
	"fmt"

	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/spf13/cobra"
)

var axisNames = [3]string{"x", "y", "z"}

type hitOptions struct {
	projectOptions
	op     string
	at     string
	size   float64
	pixels float64
	local  bool
}

func newHitCmd(root *rootOptions) *cobra.Command {
	opts := &hitOptions{}

	cmd := &cobra.Command{
		Use:     "hit",
		Short:   "Hit test the gizmo under a pane pixel",
		Example: `  quadview hit --view perspective --px 420 --py 300 --op rotate`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			camera, err := opts.camera(cmd, root)
			if err != nil {
				return err
			}
			op, err := gizmo.ParseOperation(opts.op)
			if err != nil {
				return err
			}

			g := gizmo.New(gizmo.WithOperation(op))
			if opts.local {
				g.SetSpace(gizmo.Local)
			}
			if opts.at != "" {
				at, err := parseVector(opts.at)
				if err != nil {
					return err
				}
				g.SetPosition(at)
			}

			view, proj := camera.Matrices()
			w, h := camera.Viewport()
			size := opts.size
			if size <= 0 {
				size = g.WorldSize(view, proj, w, h, opts.pixels)
			}
			g.SetSize(size)

			ray := camera.PixelRay(opts.px, opts.py)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gizmo: %s at %s size %.4f\n", op, g.Position(), g.Size())

			hit, ok := g.HitTest(ray.Origin, ray.Dir)
			if !ok {
				fmt.Fprintln(out, "hit:   none")
				return nil
			}
			fmt.Fprintf(out, "hit:   %s t=%.4f\n", axisNames[hit.Axis], hit.T)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.view, "view", "perspective", "pane: perspective, top, front, side")
	f.Float64Var(&opts.width, "width", 800, "pane width in pixels")
	f.Float64Var(&opts.height, "height", 600, "pane height in pixels")
	f.Float64Var(&opts.px, "px", 400, "pixel X")
	f.Float64Var(&opts.py, "py", 300, "pixel Y")
	f.Float64Var(&opts.yaw, "yaw", 0, "perspective yaw in degrees")
	f.Float64Var(&opts.pitch, "pitch", 0, "perspective pitch in degrees")
	f.Float64Var(&opts.distance, "distance", 0, "camera distance (default: pane default)")
	f.StringVar(&opts.pan, "pan", "", "camera target x,y,z")
	f.StringVar(&opts.op, "op", "translate", "operation: translate, rotate, scale")
	f.StringVar(&opts.at, "at", "", "gizmo position x,y,z (default: origin)")
	f.Float64Var(&opts.size, "size", 0, "handle length in world units (default: screen sized)")
	f.Float64Var(&opts.pixels, "pixels", 80, "on-screen handle length used when --size is not set")
	f.BoolVar(&opts.local, "local", false, "use local space")
	return cmd
}
