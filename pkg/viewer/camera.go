package viewer

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
)

// ViewportType selects the camera basis of a pane
type ViewportType int

const (
	Perspective ViewportType = iota
	Top
	Front
	Side
)

// ViewportTypes lists all pane types in layout order
var ViewportTypes = []ViewportType{Perspective, Top, Front, Side}

func (t ViewportType) String() string {
	switch t {
	case Perspective:
		return "perspective"
	case Top:
		return "top"
	case Front:
		return "front"
	case Side:
		return "side"
	}
	return fmt.Sprintf("viewport(%d)", int(t))
}

// IsOrtho reports whether the pane uses a fixed orthographic basis
func (t ViewportType) IsOrtho() bool {
	return t != Perspective
}

// ParseViewportType parses a pane name such as "top" or "perspective"
func ParseViewportType(s string) (ViewportType, error) {
	for _, t := range ViewportTypes {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown viewport type %q", s)
}

// Camera limits and defaults
const (
	MinPitch = -89.0
	MaxPitch = 89.0

	MinDistance      = 0.1
	MaxDistance      = 10000.0
	MinOrthoDistance = 8.0

	DefaultYaw           = 0.0
	DefaultPitch         = 20.0
	DefaultDistance      = 6.0
	DefaultOrthoDistance = 64.0

	// ReferenceHeight is the pane height assumed until SetViewport is called
	ReferenceHeight = 512.0
)

// CameraState is the navigation state of one pane. Angles are in degrees.
// Pan is the world-space point the camera looks at.
type CameraState struct {
	Type     ViewportType
	Yaw      float64
	Pitch    float64
	Distance float64
	Pan      geometry.Vector3
}

// Camera holds the per-pane navigation state and the gestures that mutate it
type Camera struct {
	state           CameraState
	cfg             *config.Config
	defaultDistance float64
	width           float64
	height          float64
}

// NewCamera creates a camera for the given pane type. A nil config uses the defaults.
func NewCamera(viewportType ViewportType, cfg *config.Config) *Camera {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Camera{
		cfg:    cfg,
		width:  ReferenceHeight,
		height: ReferenceHeight,
	}
	c.state = initialState(viewportType)
	c.defaultDistance = c.state.Distance
	return c
}

// initialState returns the construction state. Ortho yaw/pitch are nominal
// constants matching the fixed basis and are never changed afterwards.
func initialState(t ViewportType) CameraState {
	switch t {
	case Top:
		return CameraState{Type: t, Yaw: 0, Pitch: MaxPitch, Distance: DefaultOrthoDistance}
	case Front:
		return CameraState{Type: t, Yaw: 0, Pitch: 0, Distance: DefaultOrthoDistance}
	case Side:
		return CameraState{Type: t, Yaw: 90, Pitch: 0, Distance: DefaultOrthoDistance}
	}
	return CameraState{Type: Perspective, Yaw: DefaultYaw, Pitch: DefaultPitch, Distance: DefaultDistance}
}

// State returns a copy of the current camera state
func (c *Camera) State() CameraState {
	return c.state
}

// SetState replaces the state. Type is kept, and for ortho panes so are yaw and pitch.
func (c *Camera) SetState(s CameraState) {
	s.Type = c.state.Type
	if s.Type.IsOrtho() {
		s.Yaw = c.state.Yaw
		s.Pitch = c.state.Pitch
	}
	c.state = s
	c.clampPitch()
	c.clampDistance()
}

// Type returns the pane type
func (c *Camera) Type() ViewportType {
	return c.state.Type
}

// SetViewport records the pane size in pixels
func (c *Camera) SetViewport(width, height float64) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// Viewport returns the pane size in pixels
func (c *Camera) Viewport() (width, height float64) {
	return c.width, c.height
}

// Aspect returns width / height of the pane
func (c *Camera) Aspect() float64 {
	return c.width / c.height
}

// Basis returns the camera's forward, right and up unit vectors
func (c *Camera) Basis() (forward, right, up geometry.Vector3) {
	return basis(c.state)
}

// Eye returns the camera position
func (c *Camera) Eye() geometry.Vector3 {
	return eye(c.state)
}

// Orbit rotates the perspective camera around its target. No-op for ortho
// panes and non-finite deltas.
func (c *Camera) Orbit(dx, dy float64) {
	if c.state.Type.IsOrtho() || !finite(dx, dy) {
		return
	}
	k := c.cfg.Camera.OrbitSpeed
	c.state.Yaw = math.Mod(c.state.Yaw+dx*k, 360)
	c.state.Pitch -= dy * k
	c.clampPitch()
}

// Pan moves the target in the view plane. Speed scales with distance so the
// apparent pan speed does not depend on zoom.
func (c *Camera) Pan(dx, dy float64) {
	if !finite(dx, dy) {
		return
	}
	_, right, up := c.Basis()

	var speed float64
	if c.state.Type.IsOrtho() {
		speed = c.state.Distance / c.height
	} else {
		speed = c.state.Distance * c.cfg.Camera.PanSpeed
	}

	// Screen Y grows downward
	move := right.Mul(-dx * speed).Add(up.Mul(dy * speed))
	c.state.Pan = c.state.Pan.Add(move)
}

// Dolly changes the distance to the target. Positive delta moves away.
func (c *Camera) Dolly(delta float64) {
	k := c.cfg.Camera.DollySpeed
	if c.state.Type.IsOrtho() {
		step := c.state.Distance * k
		c.state.Distance += delta * step
	} else {
		c.state.Distance *= 1 + delta*k
	}
	c.clampDistance()
}

// FlyStep moves the perspective target for dtTicks fixed ticks.
// move holds forward, back, left, right.
func (c *Camera) FlyStep(move [4]bool, shift bool, dtTicks int) {
	if c.state.Type.IsOrtho() || dtTicks <= 0 {
		return
	}

	forward, right, _ := c.Basis()
	var dir geometry.Vector3
	if move[0] {
		dir = dir.Add(forward)
	}
	if move[1] {
		dir = dir.Sub(forward)
	}
	if move[2] {
		dir = dir.Sub(right)
	}
	if move[3] {
		dir = dir.Add(right)
	}

	speed := c.cfg.Camera.FlySpeed
	if shift {
		speed *= 3
	}
	c.state.Pan = c.state.Pan.Add(dir.Mul(speed * float64(dtTicks)))
}

// Reset restores the default view of the pane
func (c *Camera) Reset() {
	c.state = initialState(c.state.Type)
	c.state.Distance = c.defaultDistance
}

// Focus centers the camera on target without changing its orientation.
// The target is projected onto the camera's ground plane: the horizontal
// plane through the current target for perspective panes, the view plane
// for ortho panes.
func (c *Camera) Focus(target geometry.Vector3) {
	normal := geometry.AxisY
	if c.state.Type.IsOrtho() {
		normal, _, _ = c.Basis()
	}
	c.state.Pan = geometry.ProjectOntoPlane(target, c.state.Pan, normal)
	c.state.Distance = c.cfg.Camera.FocusDistance
	c.clampDistance()
}

func (c *Camera) clampPitch() {
	c.state.Pitch = math.Max(MinPitch, math.Min(MaxPitch, c.state.Pitch))
}

func (c *Camera) clampDistance() {
	minDistance := MinDistance
	if c.state.Type.IsOrtho() {
		minDistance = MinOrthoDistance
	}
	if math.IsNaN(c.state.Distance) || c.state.Distance < minDistance {
		c.state.Distance = minDistance
	}
	if c.state.Distance > MaxDistance {
		c.state.Distance = MaxDistance
	}
}

// basis derives forward/right/up. Ortho panes use fixed axes.
func basis(s CameraState) (forward, right, up geometry.Vector3) {
	switch s.Type {
	case Top:
		return geometry.NewVector3(0, -1, 0), geometry.AxisX, geometry.NewVector3(0, 0, -1)
	case Front:
		return geometry.NewVector3(0, 0, -1), geometry.AxisX, geometry.AxisY
	case Side:
		return geometry.NewVector3(-1, 0, 0), geometry.NewVector3(0, 0, -1), geometry.AxisY
	}

	yaw := s.Yaw * math.Pi / 180
	pitch := s.Pitch * math.Pi / 180
	offset := geometry.NewVector3(
		math.Cos(pitch)*math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch)*math.Cos(yaw),
	)
	forward = offset.Mul(-1).Normalize()
	right = forward.Cross(geometry.AxisY).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

func eye(s CameraState) geometry.Vector3 {
	forward, _, _ := basis(s)
	return s.Pan.Sub(forward.Mul(s.Distance))
}
