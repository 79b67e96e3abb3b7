package app

import (
	"image"
	"image/color"

	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// Overlay sizes in pixels
const (
	gridLines      = 32
	ringSamples    = 48
	markerSize     = 4
	primaryMarker  = 6
	maxMeshOverlay = 20000
)

// Overlay paints the pane: the placeholder scene (background, grid and
// registered snap edges) when no external renderer is loaded, then the
// selection markers, the gizmo and the marquee.
func (c *Controller) Overlay(img *image.RGBA) {
	p := viewer.NewPainter(img)
	b := img.Bounds()
	c.Resize(float64(b.Dx()), float64(b.Dy()))

	if c.DrawsOverlay() {
		p.Clear(viewer.ColorBackground)
		p.Grid(c.camera, c.deps.Config.EffectiveGridSize(), gridLines)
		for i, e := range c.deps.Snap.Edges() {
			if i >= maxMeshOverlay {
				break
			}
			p.WorldLine(c.camera, e.A, e.B, viewer.ColorMesh)
		}
	}

	primary, hasPrimary := c.deps.Selection.Primary()
	for _, s := range c.deps.Selection.All() {
		if hasPrimary && s == primary {
			continue
		}
		p.WorldMarker(c.camera, s, markerSize, viewer.ColorSelection)
	}
	if hasPrimary {
		p.WorldMarker(c.camera, primary, primaryMarker, viewer.ColorPrimary)
	}

	if c.GizmoVisible() {
		c.paintGizmo(p)
	}

	if c.marquee.Active() {
		r := c.marquee.Rect()
		p.Rect(r.MinX, r.MinY, r.MaxX, r.MaxY, viewer.ColorMarquee)
	}
}

func (c *Controller) paintGizmo(p *viewer.Painter) {
	axisColor := func(axis int) color.RGBA {
		if c.gizmo.IsAxisLocked(axis) {
			return viewer.ColorLocked
		}
		if c.drag.kind == dragGizmo && c.drag.axis == axis {
			return viewer.ColorPrimary
		}
		return viewer.AxisColors[axis]
	}

	if c.gizmo.Mode() == gizmo.ModeHandle && c.gizmo.Operation() == gizmo.Rotate {
		for axis, ring := range c.gizmo.Rings(ringSamples) {
			col := axisColor(axis)
			for i := 1; i < len(ring); i++ {
				p.WorldLine(c.camera, ring[i-1], ring[i], col)
			}
		}
		return
	}

	for _, seg := range c.gizmo.Handles() {
		col := viewer.ColorSelection
		if seg.Axis != gizmo.NoAxis {
			col = axisColor(seg.Axis)
		}
		p.WorldLine(c.camera, seg.Start, seg.End, col)
		if c.gizmo.Mode() == gizmo.ModeHandle && c.gizmo.Operation() == gizmo.Scale {
			p.WorldMarker(c.camera, seg.End, markerSize, col)
		}
	}
}
