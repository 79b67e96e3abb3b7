package app

import (
	"math"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/selection"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// Resize records the pane size in pixels
func (c *Controller) Resize(width, height float64) {
	c.camera.SetViewport(width, height)
	c.updateGizmoSize()
}

// PointerPress starts a gesture. The primary button grabs the gizmo when it
// is hit and otherwise starts a click or marquee; secondary orbits the
// perspective pane and pans ortho panes; middle pans.
func (c *Controller) PointerPress(e viewer.PointerEvent) {
	if c.drag.kind != dragNone {
		return
	}
	c.drag = DragState{
		button: e.Button,
		pressX: e.X,
		pressY: e.Y,
		lastX:  e.X,
		lastY:  e.Y,
		axis:   gizmo.NoAxis,
		factor: 1,
	}

	switch e.Button {
	case viewer.ButtonPrimary:
		if c.beginGizmoDrag(e.X, e.Y) {
			return
		}
		c.drag.kind = dragSelect
		c.marquee.Press(e.X, e.Y)
	case viewer.ButtonSecondary:
		if c.camera.Type().IsOrtho() {
			c.drag.kind = dragPan
		} else {
			c.drag.kind = dragOrbit
		}
	case viewer.ButtonMiddle:
		c.drag.kind = dragPan
	}
}

// PointerMove continues the gesture of the held button. Without a held button it does nothing.
func (c *Controller) PointerMove(e viewer.PointerEvent) {
	if c.drag.kind == dragNone {
		return
	}
	dx := e.X - c.drag.lastX
	dy := e.Y - c.drag.lastY
	c.drag.lastX, c.drag.lastY = e.X, e.Y
	if math.Hypot(e.X-c.drag.pressX, e.Y-c.drag.pressY) > selection.DragThreshold {
		c.drag.moved = true
	}

	switch c.drag.kind {
	case dragOrbit:
		c.camera.Orbit(dx, dy)
		c.updateGizmoSize()
	case dragPan:
		c.camera.Pan(dx, dy)
		c.updateGizmoSize()
	case dragSelect:
		c.marquee.Move(e.X, e.Y)
	case dragGizmo:
		if c.updateGizmoDrag(e.X, e.Y, dx, dy) {
			c.broadcast()
		}
	}
}

// PointerRelease ends the gesture. A primary release commits a click or
// marquee selection; a secondary click in Handle mode cycles the operation.
func (c *Controller) PointerRelease(e viewer.PointerEvent) {
	kind := c.drag.kind
	moved := c.drag.moved
	button := c.drag.button
	c.drag = DragState{axis: gizmo.NoAxis, factor: 1}

	switch kind {
	case dragSelect:
		c.marquee.Move(e.X, e.Y)
		rect, isMarquee := c.marquee.Release()
		if isMarquee {
			cx, cy := rect.Center()
			c.deps.Selection.Add(c.placeAt(cx, cy))
		} else if e.Mods.Additive() {
			c.deps.Selection.Add(c.placeAt(e.X, e.Y))
		} else {
			c.deps.Selection.Replace(c.placeAt(e.X, e.Y))
		}
		c.syncGizmo()
		c.broadcast()
	case dragOrbit, dragPan:
		if button == viewer.ButtonSecondary && !moved {
			c.gizmo.CycleOperationFromGesture()
		}
	case dragGizmo:
		c.syncGizmo()
		c.broadcast()
	}
}

// Wheel dollies the camera. Positive steps move closer.
func (c *Controller) Wheel(steps float64) {
	c.camera.Dolly(-steps)
	c.updateGizmoSize()
}

// KeyDown handles an editor key press
func (c *Controller) KeyDown(k viewer.Key) {
	switch k {
	case viewer.KeyForward:
		c.fly.move[0] = true
	case viewer.KeyBack:
		c.fly.move[1] = true
	case viewer.KeyLeft:
		c.fly.move[2] = true
	case viewer.KeyRight:
		c.fly.move[3] = true
	case viewer.KeyShift:
		c.fly.shift = true
	case viewer.KeyFocus:
		c.FocusSelection()
	case viewer.KeyReset:
		c.ResetCamera()
	case viewer.KeyCycleMode:
		c.cancelDrag()
		c.gizmo.CycleMode()
	case viewer.KeyCycleOperation:
		c.gizmo.CycleOperation()
	case viewer.KeyToggleSpace:
		c.gizmo.ToggleSpace()
	case viewer.KeyCancel:
		c.cancelDrag()
	}
}

// KeyUp handles an editor key release
func (c *Controller) KeyUp(k viewer.Key) {
	switch k {
	case viewer.KeyForward:
		c.fly.move[0] = false
	case viewer.KeyBack:
		c.fly.move[1] = false
	case viewer.KeyLeft:
		c.fly.move[2] = false
	case viewer.KeyRight:
		c.fly.move[3] = false
	case viewer.KeyShift:
		c.fly.shift = false
	}
}

// cancelDrag drops the current gesture without committing anything further
func (c *Controller) cancelDrag() {
	c.marquee.Cancel()
	c.drag = DragState{axis: gizmo.NoAxis, factor: 1}
}

// beginGizmoDrag hit tests the gizmo under the pointer and grabs the hit axis
func (c *Controller) beginGizmoDrag(x, y float64) bool {
	if !c.GizmoVisible() {
		return false
	}
	primary, _ := c.deps.Selection.Primary()
	c.syncGizmo()

	ray := c.camera.PixelRay(x, y)
	hit, ok := c.gizmo.HitTest(ray.Origin, ray.Dir)
	if !ok {
		return false
	}

	c.drag.kind = dragGizmo
	c.drag.axis = hit.Axis
	c.drag.operation = c.gizmo.Operation()
	c.drag.start = primary
	if grabbed, ok := c.dragPoint(x, y); ok {
		c.drag.grab = primary.Sub(grabbed)
	}
	return true
}

// updateGizmoDrag applies pointer motion to the grabbed axis and reports
// whether the selection moved
func (c *Controller) updateGizmoDrag(x, y, dx, dy float64) bool {
	switch c.drag.operation {
	case gizmo.Rotate:
		c.drag.angle += dx * RotateDegreesPerPixel
		return false
	case gizmo.Scale:
		c.drag.factor = math.Max(MinScaleFactor, c.drag.factor*(1-dy*ScalePerPixel))
		return false
	}

	p, ok := c.dragPoint(x, y)
	if !ok {
		return false
	}
	candidate := c.gizmo.ProjectToAxis(p.Add(c.drag.grab), c.drag.axis)
	cursor := candidate
	snapped := c.deps.Snap.SnapPosition(candidate, &cursor)

	c.deps.Selection.SetPrimary(snapped)
	c.gizmo.SetPosition(snapped)
	return true
}

// dragPoint maps the pointer onto the translate drag plane. Ortho panes use
// the view plane; the perspective pane intersects the pick ray with the plane
// through the gizmo that contains the drag axis and faces the camera.
func (c *Controller) dragPoint(x, y float64) (geometry.Vector3, bool) {
	if c.camera.Type().IsOrtho() {
		return c.camera.ScreenToWorld(x, y), true
	}

	forward, _, _ := c.camera.Basis()
	axis := c.gizmo.Axis(c.drag.axis)
	normal := forward.Sub(axis.Mul(forward.Dot(axis)))
	if normal.Length() < geometry.Epsilon {
		normal = forward
	}

	ray := c.camera.PixelRay(x, y)
	t, ok := ray.IntersectPlane(c.gizmo.Position(), normal.Normalize())
	if !ok {
		return geometry.Vector3{}, false
	}
	return ray.PointAt(t), true
}
