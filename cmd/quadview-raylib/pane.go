package main

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/quadview/internal/app"
	"github.com/philipparndt/quadview/pkg/analysis"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/viewer"
)

const (
	ringSamples = 48
	gridLines   = 32
)

// pane is one quarter of the window rendered into its own texture
type pane struct {
	controller *app.Controller
	bounds     rl.Rectangle
	target     rl.RenderTexture2D
	loaded     bool
}

// layout places the pane and recreates its texture when the size changed
func (p *pane) layout(x, y, w, h float32) {
	if p.loaded && p.bounds.Width == w && p.bounds.Height == h {
		p.bounds.X, p.bounds.Y = x, y
		return
	}
	if p.loaded {
		rl.UnloadRenderTexture(p.target)
	}
	p.bounds = rl.NewRectangle(x, y, w, h)
	p.target = rl.LoadRenderTexture(int32(w), int32(h))
	p.loaded = true
	p.controller.Resize(float64(w), float64(h))
}

func (p *pane) unload() {
	if p.loaded {
		rl.UnloadRenderTexture(p.target)
		p.loaded = false
	}
}

func (p *pane) contains(pos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pos, p.bounds)
}

func (p *pane) local(pos rl.Vector2) (float64, float64) {
	return float64(pos.X - p.bounds.X), float64(pos.Y - p.bounds.Y)
}

// camera3D mirrors the pane camera for raylib
func (p *pane) camera3D() rl.Camera3D {
	cam := p.controller.Camera()
	state := cam.State()
	_, _, up := cam.Basis()

	c := rl.Camera3D{
		Position:   vec(cam.Eye()),
		Target:     vec(state.Pan),
		Up:         vec(up),
		Fovy:       float32(viewer.PerspectiveFOV),
		Projection: rl.CameraPerspective,
	}
	if state.Type.IsOrtho() {
		c.Fovy = float32(state.Distance)
		c.Projection = rl.CameraOrthographic
	}
	return c
}

// render draws the scene, selection, gizmo and marquee into the pane texture
func (p *pane) render(ws *app.Workspace, mesh *rl.Mesh, material rl.Material) {
	c := p.controller

	rl.BeginTextureMode(p.target)
	rl.ClearBackground(rgba(viewer.ColorBackground))

	rl.BeginMode3D(p.camera3D())
	p.drawGrid(ws.Config().EffectiveGridSize())
	if mesh != nil {
		rl.DrawMesh(*mesh, material, rl.MatrixIdentity())
	}

	markerSize := float32(c.Gizmo().Size() * 0.04)
	primary, hasPrimary := ws.Selection().Primary()
	for _, s := range ws.Selection().All() {
		col := rgba(viewer.ColorSelection)
		if hasPrimary && s == primary {
			col = rgba(viewer.ColorPrimary)
		}
		rl.DrawSphere(vec(s), markerSize, col)
	}

	all := ws.Selection().All()
	if len(all) >= 2 {
		rl.DrawLine3D(vec(all[0]), vec(all[1]), rgba(viewer.ColorSelection))
	}

	if c.GizmoVisible() {
		p.drawGizmo()
	}
	rl.EndMode3D()

	if len(all) >= 2 {
		p.drawMeasurement(analysis.Measure(all[0], all[1]))
	}

	if m := c.Marquee(); m.Active() {
		r := m.Rect()
		rl.DrawRectangleLines(int32(r.MinX), int32(r.MinY), int32(r.Width()), int32(r.Height()), rgba(viewer.ColorMarquee))
	}
	label := c.Name()
	if c.GizmoVisible() {
		label += "  " + c.Gizmo().Operation().String() + " / " + c.Gizmo().Space().String()
	}
	rl.DrawText(label, 8, 8, 16, rl.RayWhite)
	rl.EndTextureMode()
}

func (p *pane) draw() {
	src := rl.NewRectangle(0, 0, p.bounds.Width, -p.bounds.Height)
	rl.DrawTextureRec(p.target.Texture, src, rl.NewVector2(p.bounds.X, p.bounds.Y), rl.White)
	rl.DrawRectangleLinesEx(p.bounds, 1, rl.NewColor(70, 70, 80, 255))
}

func (p *pane) drawGizmo() {
	g := p.controller.Gizmo()
	drag := p.controller.DragInfo()

	axisColor := func(axis int) rl.Color {
		if drag.Active && drag.Axis == axis {
			return rgba(viewer.ColorPrimary)
		}
		return rgba(viewer.AxisColors[axis])
	}

	for axis, ring := range g.Rings(ringSamples) {
		for i := 1; i < len(ring); i++ {
			rl.DrawLine3D(vec(ring[i-1]), vec(ring[i]), axisColor(axis))
		}
	}
	for _, seg := range g.Handles() {
		rl.DrawLine3D(vec(seg.Start), vec(seg.End), axisColor(seg.Axis))
		if g.Mode() == gizmo.ModeHandle && g.Operation() == gizmo.Scale {
			rl.DrawCube(vec(seg.End), float32(g.Size()*0.08), float32(g.Size()*0.08), float32(g.Size()*0.08), axisColor(seg.Axis))
		}
	}
}

// drawGrid draws grid lines in the pane's view plane, the XZ plane for perspective
func (p *pane) drawGrid(spacing float64) {
	cam := p.controller.Camera()
	state := cam.State()

	var u, v rl.Vector3
	switch state.Type {
	case viewer.Front:
		u, v = rl.NewVector3(1, 0, 0), rl.NewVector3(0, 1, 0)
	case viewer.Side:
		u, v = rl.NewVector3(0, 0, 1), rl.NewVector3(0, 1, 0)
	default:
		u, v = rl.NewVector3(1, 0, 0), rl.NewVector3(0, 0, 1)
	}

	extent := float32(spacing * gridLines)
	for i := -gridLines; i <= gridLines; i++ {
		col := rgba(viewer.ColorGrid)
		if i%8 == 0 {
			col = rgba(viewer.ColorGridMajor)
		}
		o := float32(float64(i) * spacing)
		rl.DrawLine3D(
			rl.Vector3Add(rl.Vector3Scale(u, o), rl.Vector3Scale(v, -extent)),
			rl.Vector3Add(rl.Vector3Scale(u, o), rl.Vector3Scale(v, extent)), col)
		rl.DrawLine3D(
			rl.Vector3Add(rl.Vector3Scale(v, o), rl.Vector3Scale(u, -extent)),
			rl.Vector3Add(rl.Vector3Scale(v, o), rl.Vector3Scale(u, extent)), col)
	}
}

func rgba(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
