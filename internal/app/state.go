package app

import (
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// dragKind is what the held pointer button is doing
type dragKind int

const (
	dragNone dragKind = iota
	dragSelect
	dragGizmo
	dragOrbit
	dragPan
)

// DragState holds pointer and drag state of one pane
type DragState struct {
	kind   dragKind
	button viewer.Button
	pressX float64
	pressY float64
	lastX  float64
	lastY  float64
	moved  bool // pointer left the click threshold since the press

	// gizmo manipulation
	axis      int
	operation gizmo.Operation
	start     geometry.Vector3 // primary position at press
	grab      geometry.Vector3 // offset from the grabbed point to start
	angle     float64          // accumulated rotation in degrees
	factor    float64          // accumulated scale factor
}

// DragInfo reports an in-progress gizmo manipulation
type DragInfo struct {
	Active    bool
	Operation gizmo.Operation
	Axis      int
	Angle     float64          // Rotate: degrees around Axis
	Factor    float64          // Scale: factor along Axis
	Delta     geometry.Vector3 // Translate: primary minus its press position
}

// FlyState holds the held fly keys
type FlyState struct {
	move  [4]bool // forward, back, left, right
	shift bool
}

func (f FlyState) active() bool {
	return f.move[0] || f.move[1] || f.move[2] || f.move[3]
}

// RendererStatus tracks whether an external renderer draws the scene
type RendererStatus struct {
	loaded   bool
	material string
}
