// Package gizmo implements the translate/rotate/scale manipulation handle:
// its mode/operation/space state, ray hit testing and screen-size-invariant sizing.
package gizmo

import (
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/snapping"
)

// NoAxis is reported when no handle axis is involved
const NoAxis = -1

// State is a snapshot of the gizmo
type State struct {
	Mode       Mode
	Operation  Operation
	Space      Space
	Position   geometry.Vector3
	Basis      [3]geometry.Vector3
	Size       float64
	AxisLocked [3]bool
}

// Gizmo is the on-screen manipulation handle of one viewport pane
type Gizmo struct {
	state              State
	onOperationChanged []func(Operation)
}

// Option configures a Gizmo
type Option func(*Gizmo)

// WithMode sets the initial mode
func WithMode(m Mode) Option {
	return func(g *Gizmo) { g.state.Mode = m }
}

// WithOperation sets the initial operation
func WithOperation(o Operation) Option {
	return func(g *Gizmo) { g.state.Operation = o }
}

// WithSpace sets the initial space
func WithSpace(s Space) Option {
	return func(g *Gizmo) { g.state.Space = s }
}

// WithSize sets the initial handle length in world units
func WithSize(size float64) Option {
	return func(g *Gizmo) { g.state.Size = size }
}

// New creates a gizmo in Handle mode with the Translate operation in global space
func New(opts ...Option) *Gizmo {
	g := &Gizmo{
		state: State{
			Mode:      ModeHandle,
			Operation: Translate,
			Space:     Global,
			Basis:     [3]geometry.Vector3{geometry.AxisX, geometry.AxisY, geometry.AxisZ},
			Size:      1,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns a snapshot of the gizmo
func (g *Gizmo) State() State {
	return g.state
}

func (g *Gizmo) Mode() Mode           { return g.state.Mode }
func (g *Gizmo) Operation() Operation { return g.state.Operation }
func (g *Gizmo) Space() Space         { return g.state.Space }
func (g *Gizmo) Position() geometry.Vector3 {
	return g.state.Position
}
func (g *Gizmo) Size() float64 { return g.state.Size }

func (g *Gizmo) SetMode(m Mode)           { g.state.Mode = m }
func (g *Gizmo) SetOperation(o Operation) { g.state.Operation = o }
func (g *Gizmo) SetSpace(s Space)         { g.state.Space = s }

// CycleMode advances the mode and returns it
func (g *Gizmo) CycleMode() Mode {
	g.state.Mode = g.state.Mode.Next()
	return g.state.Mode
}

// CycleOperation advances the operation and returns it. Observers are not notified.
func (g *Gizmo) CycleOperation() Operation {
	g.state.Operation = g.state.Operation.Next()
	return g.state.Operation
}

// ToggleSpace switches between global and local axes and returns the new space
func (g *Gizmo) ToggleSpace() Space {
	g.state.Space = g.state.Space.Next()
	return g.state.Space
}

// CycleOperationFromGesture advances the operation in response to the
// alternate-button click on the handle and notifies observers. It only acts
// in Handle mode.
func (g *Gizmo) CycleOperationFromGesture() (Operation, bool) {
	if g.state.Mode != ModeHandle {
		return g.state.Operation, false
	}
	op := g.CycleOperation()
	for _, fn := range g.onOperationChanged {
		fn(op)
	}
	return op, true
}

// OnOperationChanged registers an observer for gesture-driven operation changes
func (g *Gizmo) OnOperationChanged(fn func(Operation)) {
	g.onOperationChanged = append(g.onOperationChanged, fn)
}

// SetAxisLocked excludes axis i from hit testing and manipulation
func (g *Gizmo) SetAxisLocked(i int, locked bool) {
	if i < 0 || i > 2 {
		return
	}
	g.state.AxisLocked[i] = locked
}

// IsAxisLocked reports whether axis i is locked. Invalid indices count as locked.
func (g *Gizmo) IsAxisLocked(i int) bool {
	if i < 0 || i > 2 {
		return true
	}
	return g.state.AxisLocked[i]
}

// SetSize sets the handle length in world units. Non-positive sizes are ignored.
func (g *Gizmo) SetSize(size float64) {
	if size > 0 {
		g.state.Size = size
	}
}

// SetPosition moves the gizmo
func (g *Gizmo) SetPosition(p geometry.Vector3) {
	g.state.Position = p
}

// SetBasis sets the local axes used in Local space
func (g *Gizmo) SetBasis(x, y, z geometry.Vector3) {
	g.state.Basis = [3]geometry.Vector3{x.Normalize(), y.Normalize(), z.Normalize()}
}

// Sync moves the gizmo onto the primary selection, grid-quantized first when quantize is set
func (g *Gizmo) Sync(primary geometry.Vector3, gridSize float64, quantize bool) {
	if quantize {
		primary = snapping.SnapToGrid(primary, gridSize)
	}
	g.state.Position = primary
}

// Axis returns the direction of handle axis i in the current space
func (g *Gizmo) Axis(i int) geometry.Vector3 {
	if i < 0 || i > 2 {
		return geometry.Vector3{}
	}
	if g.state.Space == Local {
		return g.state.Basis[i]
	}
	return geometry.Axis(i)
}
