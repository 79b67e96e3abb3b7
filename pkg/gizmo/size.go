package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// FallbackScreenSize is used when the gizmo cannot be projected
const FallbackScreenSize = 50.0

// CalculateScreenSize returns how many pixels one world unit at the gizmo
// position spans on screen. It falls back to FallbackScreenSize when the
// gizmo is behind the camera.
func (g *Gizmo) CalculateScreenSize(view, proj mgl64.Mat4, width, height float64) float64 {
	x0, y0, ok0 := viewer.WorldToScreen(g.state.Position, view, proj, width, height)
	x1, y1, ok1 := viewer.WorldToScreen(g.state.Position.Add(geometry.AxisX), view, proj, width, height)
	if !ok0 || !ok1 {
		return FallbackScreenSize
	}

	d := math.Hypot(x1-x0, y1-y0)
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return FallbackScreenSize
	}
	return d
}

// WorldSize returns the world length that appears targetPixels long at the gizmo position
func (g *Gizmo) WorldSize(view, proj mgl64.Mat4, width, height, targetPixels float64) float64 {
	return targetPixels / g.CalculateScreenSize(view, proj, width, height)
}
