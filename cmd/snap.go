package cmd

import (
	"fmt"
	"strings"

	"github.com/philipparndt/quadview/internal/app"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type snapOptions struct {
	at        string
	cursor    string
	modes     string
	threshold float64
	grid      float64
}

func newSnapCmd(root *rootOptions) *cobra.Command {
	opts := &snapOptions{}

	cmd := &cobra.Command{
		Use:   "snap [mesh]",
		Short: "Snap a position against the grid and a mesh's points, edges and faces",
		Example: `  quadview snap --at 7.6,0,0
  quadview snap part.stl --at 1,2,3 --cursor 1,2,3 --modes point,edge`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			service := snapping.NewService()
			service.ApplyConfig(cfg)
			if cmd.Flags().Changed("threshold") {
				service.SetThreshold(opts.threshold)
			}
			if cmd.Flags().Changed("grid") {
				service.SetGridSize(opts.grid)
			}
			if opts.modes != "" {
				modes, err := parseModes(opts.modes)
				if err != nil {
					return err
				}
				for _, m := range snapping.Modes {
					service.SetSnapMode(m, lo.Contains(modes, m))
				}
			}

			if len(args) == 1 {
				mesh, err := app.LoadMesh(args[0])
				if err != nil {
					return err
				}
				mesh.Register(service)
			}

			at, err := parseVector(opts.at)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.cursor == "" {
				fmt.Fprintf(out, "position: %s\n", service.SnapPosition(at, nil))
				return nil
			}

			cursor, err := parseVector(opts.cursor)
			if err != nil {
				return err
			}
			target := service.FindBestSnapTarget(at, cursor)
			fmt.Fprintf(out, "position: %s\n", target.Position)
			if target.OK() {
				fmt.Fprintf(out, "mode:     %s\n", target.Mode)
				fmt.Fprintf(out, "distance: %.4f\n", target.Distance)
			} else {
				fmt.Fprintln(out, "mode:     none")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.at, "at", "", "position to snap, x,y,z")
	f.StringVar(&opts.cursor, "cursor", "", "cursor position used for point, edge and face snapping, x,y,z")
	f.StringVar(&opts.modes, "modes", "", "enabled modes, comma separated (default: from config)")
	f.Float64Var(&opts.threshold, "threshold", 1, "maximum snap distance")
	f.Float64Var(&opts.grid, "grid", 8, "grid size")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func parseModes(s string) ([]snapping.Mode, error) {
	names := lo.Compact(lo.Map(strings.Split(s, ","), func(n string, _ int) string {
		return strings.TrimSpace(n)
	}))

	modes := make([]snapping.Mode, 0, len(names))
	for _, name := range names {
		m, err := snapping.ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return lo.Uniq(modes), nil
}
