package cmd

import (
	"fmt"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/viewer"
	"github.com/spf13/cobra"
)

type projectOptions struct {
	view          string
	x, y, z       float64
	width, height float64
	inverse       bool
	px, py        float64
	yaw, pitch    float64
	distance      float64
	pan           string
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a world point to a pane pixel, or a pixel back to the world",
		Example: `  quadview project --view top --x 1 --y 2 --z 3 --width 800 --height 600
  quadview project --view front --inverse --px 400 --py 300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			camera, err := opts.camera(cmd, root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if opts.inverse {
				world := camera.ScreenToWorld(opts.px, opts.py)
				ray := camera.PixelRay(opts.px, opts.py)
				fmt.Fprintf(out, "world: %s\n", world)
				fmt.Fprintf(out, "ray:   origin %s dir %s\n", ray.Origin, ray.Dir)
				return nil
			}

			x, y, visible := camera.WorldToScreen(geometry.NewVector3(opts.x, opts.y, opts.z))
			fmt.Fprintf(out, "pixel: (%.3f, %.3f) visible: %t\n", x, y, visible)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.view, "view", "perspective", "pane: perspective, top, front, side")
	f.Float64Var(&opts.x, "x", 0, "world X")
	f.Float64Var(&opts.y, "y", 0, "world Y")
	f.Float64Var(&opts.z, "z", 0, "world Z")
	f.Float64Var(&opts.width, "width", 800, "pane width in pixels")
	f.Float64Var(&opts.height, "height", 600, "pane height in pixels")
	f.BoolVar(&opts.inverse, "inverse", false, "map --px/--py to world space")
	f.Float64Var(&opts.px, "px", 0, "pixel X")
	f.Float64Var(&opts.py, "py", 0, "pixel Y")
	f.Float64Var(&opts.yaw, "yaw", viewer.DefaultYaw, "perspective yaw in degrees")
	f.Float64Var(&opts.pitch, "pitch", viewer.DefaultPitch, "perspective pitch in degrees")
	f.Float64Var(&opts.distance, "distance", 0, "camera distance (default: pane default)")
	f.StringVar(&opts.pan, "pan", "", "camera target x,y,z")
	return cmd
}

// camera builds the pane camera described by the flags
func (o *projectOptions) camera(cmd *cobra.Command, root *rootOptions) (*viewer.Camera, error) {
	t, err := viewer.ParseViewportType(o.view)
	if err != nil {
		return nil, err
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}

	camera := viewer.NewCamera(t, cfg)
	camera.SetViewport(o.width, o.height)

	state := camera.State()
	if cmd.Flags().Changed("yaw") {
		state.Yaw = o.yaw
	}
	if cmd.Flags().Changed("pitch") {
		state.Pitch = o.pitch
	}
	if o.distance > 0 {
		state.Distance = o.distance
	}
	if o.pan != "" {
		pan, err := parseVector(o.pan)
		if err != nil {
			return nil, err
		}
		state.Pan = pan
	}
	camera.SetState(state)
	return camera, nil
}
