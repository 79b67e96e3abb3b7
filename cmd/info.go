package cmd

import (
	"fmt"

	"github.com/philipparndt/quadview/internal/app"
	"github.com/philipparndt/quadview/pkg/analysis"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Display the snap primitives a mesh file contributes",
		Long:  "Load an STL, glTF, GLB or OpenSCAD file and show its triangle count, unique points, edges, faces and bounding box.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			mesh, err := app.LoadMesh(filename)
			if err != nil {
				return err
			}
			summary := mesh.Register(snapping.NewService())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Mesh Information")
			fmt.Fprintln(out, "================")
			if summary.Name != "" {
				fmt.Fprintf(out, "Name: %s\n", summary.Name)
			}
			fmt.Fprintf(out, "File: %s\n\n", filename)

			fmt.Fprintln(out, "Snap Primitives:")
			fmt.Fprintf(out, "  Triangles: %d\n", summary.Triangles)
			fmt.Fprintf(out, "  Points: %d\n", summary.Points)
			fmt.Fprintf(out, "  Edges: %d\n", summary.Edges)
			fmt.Fprintf(out, "  Faces: %d\n\n", summary.Faces)

			if summary.Triangles == 0 {
				return nil
			}
			box := summary.Bounds
			fmt.Fprintln(out, "Bounding Box:")
			fmt.Fprintf(out, "  Min: %s\n", box.Min)
			fmt.Fprintf(out, "  Max: %s\n", box.Max)
			fmt.Fprintf(out, "  Center: %s\n", box.Center())
			fmt.Fprintf(out, "  Size: %s\n", box.Size())
			fmt.Fprintf(out, "  Diagonal: %.4f\n\n", box.Diagonal())

			result := analysis.AnalyzeModel(mesh)
			fmt.Fprintln(out, "Measurements:")
			fmt.Fprintf(out, "  Surface Area: %.4f\n", result.SurfaceArea)
			fmt.Fprintf(out, "  Edge Length: min %.4f, max %.4f, avg %.4f\n",
				result.MinEdgeLength, result.MaxEdgeLength, result.AvgEdgeLength)
			for i, edge := range analysis.FindLongestEdges(result, 3) {
				fmt.Fprintf(out, "  Longest #%d: %s -> %s (%s)\n", i+1, edge.Start, edge.End,
					analysis.FormatMeasurement(edge.Length, ""))
			}
			return nil
		},
	}
}
