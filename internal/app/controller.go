// Package app coordinates the four viewport panes: it turns pane input into
// camera, gizmo, snapping and selection updates and keeps sibling panes in sync.
package app

import (
	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/selection"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// GizmoPixels is the on-screen length of a gizmo arm
const GizmoPixels = 80.0

// Drag sensitivities for rotate and scale manipulation
const (
	RotateDegreesPerPixel = 0.5
	ScalePerPixel         = 0.01
	MinScaleFactor        = 0.01
)

// Broadcaster receives a pane's committed state changes
type Broadcaster interface {
	Broadcast(from *Controller)
}

// Deps are the shared objects a controller works on. The controller does not own them.
type Deps struct {
	Snap        *snapping.Service
	Selection   *selection.Selection
	Config      *config.Config
	Broadcaster Broadcaster
}

// Controller drives one viewport pane
type Controller struct {
	name     string
	camera   *viewer.Camera
	gizmo    *gizmo.Gizmo
	marquee  selection.Marquee
	deps     Deps
	drag     DragState
	fly      FlyState
	renderer RendererStatus
	ticks    int
}

// NewController creates a controller for camera. Missing dependencies are
// replaced by private defaults so a single pane works on its own.
func NewController(name string, camera *viewer.Camera, deps Deps) *Controller {
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if deps.Snap == nil {
		deps.Snap = snapping.NewService()
		deps.Snap.ApplyConfig(deps.Config)
	}
	if deps.Selection == nil {
		deps.Selection = selection.New()
	}
	if camera == nil {
		camera = viewer.NewCamera(viewer.Perspective, deps.Config)
	}

	c := &Controller{
		name:   name,
		camera: camera,
		gizmo:  gizmo.New(),
		deps:   deps,
	}
	c.drag.axis = gizmo.NoAxis
	c.updateGizmoSize()
	return c
}

// Name returns the pane name
func (c *Controller) Name() string { return c.name }

// Camera returns the pane camera
func (c *Controller) Camera() *viewer.Camera { return c.camera }

// Gizmo returns the pane gizmo
func (c *Controller) Gizmo() *gizmo.Gizmo { return c.gizmo }

// Marquee returns the pane marquee
func (c *Controller) Marquee() *selection.Marquee { return &c.marquee }

// Ticks returns the number of redraw ticks seen
func (c *Controller) Ticks() int { return c.ticks }

// DragInfo reports the current gizmo manipulation
func (c *Controller) DragInfo() DragInfo {
	if c.drag.kind != dragGizmo {
		return DragInfo{Axis: gizmo.NoAxis, Factor: 1}
	}
	info := DragInfo{
		Active:    true,
		Operation: c.drag.operation,
		Axis:      c.drag.axis,
		Angle:     c.drag.angle,
		Factor:    c.drag.factor,
	}
	if primary, ok := c.deps.Selection.Primary(); ok {
		info.Delta = primary.Sub(c.drag.start)
	}
	return info
}

// Tick is the redraw hook: it resizes the gizmo for the current view and
// moves it onto the primary selection.
func (c *Controller) Tick() {
	c.ticks++
	c.syncGizmo()
}

// FlyTick applies one fly step while any move key is held
func (c *Controller) FlyTick() bool {
	if !c.fly.active() {
		return false
	}
	c.camera.FlyStep(c.fly.move, c.fly.shift, 1)
	c.updateGizmoSize()
	return true
}

// FocusSelection focuses the camera on the primary selection
func (c *Controller) FocusSelection() bool {
	primary, ok := c.deps.Selection.Primary()
	if !ok {
		return false
	}
	c.camera.Focus(primary)
	c.updateGizmoSize()
	return true
}

// ResetCamera restores the pane's default view
func (c *Controller) ResetCamera() {
	c.camera.Reset()
	c.updateGizmoSize()
}

// SetMaterial stores the material identifier for the external renderer
func (c *Controller) SetMaterial(id string) { c.renderer.material = id }

// Material returns the stored material identifier
func (c *Controller) Material() string { return c.renderer.material }

// SetRendererLoaded records whether an external renderer draws the scene
func (c *Controller) SetRendererLoaded(loaded bool) { c.renderer.loaded = loaded }

// DrawsOverlay reports whether the pane draws its own scene placeholder
func (c *Controller) DrawsOverlay() bool { return !c.renderer.loaded }

// GizmoVisible reports whether the gizmo is shown and can be grabbed
func (c *Controller) GizmoVisible() bool {
	if c.gizmo.Mode() == gizmo.ModeNone {
		return false
	}
	_, ok := c.deps.Selection.Primary()
	return ok
}

// syncGizmo moves the gizmo onto the primary selection
func (c *Controller) syncGizmo() {
	if primary, ok := c.deps.Selection.Primary(); ok {
		c.gizmo.Sync(primary, c.deps.Config.EffectiveGridSize(), false)
	}
	c.updateGizmoSize()
}

// updateGizmoSize keeps the gizmo GizmoPixels long on screen
func (c *Controller) updateGizmoSize() {
	view, proj := c.camera.Matrices()
	w, h := c.camera.Viewport()
	c.gizmo.SetSize(c.gizmo.WorldSize(view, proj, w, h, GizmoPixels))
}

func (c *Controller) broadcast() {
	if c.deps.Broadcaster != nil {
		c.deps.Broadcaster.Broadcast(c)
	}
}

// placeAt converts a pane pixel to the world position used for click selection
func (c *Controller) placeAt(x, y float64) geometry.Vector3 {
	return c.camera.ScreenToWorld(x, y)
}
