package app

import (
	"errors"
	"log/slog"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/selection"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/philipparndt/quadview/pkg/viewer"
	"github.com/philipparndt/quadview/pkg/watcher"
)

// Workspace owns the state shared by the four panes and keeps them consistent
type Workspace struct {
	cfg         *config.Config
	snap        *snapping.Service
	selection   *selection.Selection
	controllers []*Controller
	onRedraw    []func(*Controller)

	configPath string
	watcher    *watcher.FileWatcher
	sourcePath string
	sources    *watcher.FileWatcher
}

// WorkspaceOption configures a Workspace
type WorkspaceOption func(*Workspace)

// WithGizmoMode sets the initial gizmo mode of every pane
func WithGizmoMode(m gizmo.Mode) WorkspaceOption {
	return func(w *Workspace) {
		for _, c := range w.controllers {
			c.gizmo.SetMode(m)
		}
	}
}

// WithRendererLoaded marks every pane as drawn by an external renderer
func WithRendererLoaded(loaded bool) WorkspaceOption {
	return func(w *Workspace) {
		for _, c := range w.controllers {
			c.SetRendererLoaded(loaded)
		}
	}
}

// WithRedraw registers a hook called for each pane that needs repainting after a broadcast
func WithRedraw(fn func(*Controller)) WorkspaceOption {
	return func(w *Workspace) {
		w.onRedraw = append(w.onRedraw, fn)
	}
}

// NewWorkspace creates the four panes, perspective first, then Top, Front and Side
func NewWorkspace(cfg *config.Config, opts ...WorkspaceOption) *Workspace {
	if cfg == nil {
		cfg = config.Default()
	}
	w := &Workspace{
		cfg:       cfg,
		snap:      snapping.NewService(),
		selection: selection.New(),
	}
	w.snap.ApplyConfig(cfg)

	deps := Deps{
		Snap:        w.snap,
		Selection:   w.selection,
		Config:      cfg,
		Broadcaster: w,
	}
	for _, t := range viewer.ViewportTypes {
		w.controllers = append(w.controllers, NewController(t.String(), viewer.NewCamera(t, cfg), deps))
	}

	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the shared configuration
func (w *Workspace) Config() *config.Config { return w.cfg }

// Snap returns the shared snapping service
func (w *Workspace) Snap() *snapping.Service { return w.snap }

// Selection returns the shared selection
func (w *Workspace) Selection() *selection.Selection { return w.selection }

// Controllers returns the panes in creation order
func (w *Workspace) Controllers() []*Controller {
	return w.controllers
}

// Controller returns the pane of the given type
func (w *Workspace) Controller(t viewer.ViewportType) *Controller {
	for _, c := range w.controllers {
		if c.camera.Type() == t {
			return c
		}
	}
	return nil
}

// OnRedraw registers a repaint hook
func (w *Workspace) OnRedraw(fn func(*Controller)) {
	w.onRedraw = append(w.onRedraw, fn)
}

// Broadcast pushes the shared selection to every pane other than from.
// It runs synchronously inside the event that caused it.
func (w *Workspace) Broadcast(from *Controller) {
	for _, c := range w.controllers {
		if c == from {
			continue
		}
		c.syncGizmo()
		for _, fn := range w.onRedraw {
			fn(c)
		}
	}
}

// Tick applies pending reloads and runs the redraw tick on every pane. It
// reports whether a reload changed shared state.
func (w *Workspace) Tick() bool {
	reloaded := w.drainChanges()
	for _, c := range w.controllers {
		c.Tick()
	}
	return reloaded
}

// FlyTick runs one fly step on every pane with held move keys
func (w *Workspace) FlyTick() bool {
	moved := false
	for _, c := range w.controllers {
		if c.FlyTick() {
			moved = true
		}
	}
	return moved
}

// SetGridSize sets the grid size, clamped to the supported range
func (w *Workspace) SetGridSize(size float64) {
	w.cfg.SetGridSize(size)
	w.snap.SetGridSize(w.cfg.EffectiveGridSize())
	slog.Debug("grid size changed", "grid_size", w.cfg.GridSize, "effective", w.cfg.EffectiveGridSize())
}

// ToggleMicrogrid switches the microgrid and returns the new state
func (w *Workspace) ToggleMicrogrid() bool {
	w.cfg.SetMicrogrid(!w.cfg.Microgrid)
	w.snap.SetGridSize(w.cfg.EffectiveGridSize())
	slog.Debug("microgrid toggled", "enabled", w.cfg.Microgrid)
	return w.cfg.Microgrid
}

// SetSnapThreshold sets the maximum snap distance in the config and the service
func (w *Workspace) SetSnapThreshold(threshold float64) {
	w.cfg.SetSnapThreshold(threshold)
	w.snap.SetThreshold(w.cfg.SnapThreshold)
	slog.Debug("snap threshold changed", "threshold", w.cfg.SnapThreshold)
}

// SetSnapMode enables or disables a snap mode in the config and the service
func (w *Workspace) SetSnapMode(mode snapping.Mode, enabled bool) {
	switch mode {
	case snapping.Grid:
		w.cfg.Snap.Grid = enabled
	case snapping.Point:
		w.cfg.Snap.Point = enabled
	case snapping.Edge:
		w.cfg.Snap.Edge = enabled
	case snapping.Face:
		w.cfg.Snap.Face = enabled
	case snapping.Perpendicular:
		w.cfg.Snap.Perpendicular = enabled
	default:
		return
	}
	w.snap.SetSnapMode(mode, enabled)
	slog.Debug("snap mode changed", "mode", mode, "enabled", enabled)
}

// OnSelectionChanged registers a selection observer
func (w *Workspace) OnSelectionChanged(fn selection.Observer) {
	w.selection.OnChanged(fn)
}

// OnOperationChanged registers an observer for gesture-driven operation
// changes in any pane
func (w *Workspace) OnOperationChanged(fn func(pane viewer.ViewportType, op gizmo.Operation)) {
	for _, c := range w.controllers {
		pane := c.camera.Type()
		c.gizmo.OnOperationChanged(func(op gizmo.Operation) {
			fn(pane, op)
		})
	}
}

// Close stops the config and primitive watchers
func (w *Workspace) Close() error {
	var errs []error
	if w.watcher != nil {
		errs = append(errs, w.watcher.Close())
		w.watcher = nil
	}
	if w.sources != nil {
		errs = append(errs, w.sources.Close())
		w.sources = nil
	}
	return errors.Join(errs...)
}
