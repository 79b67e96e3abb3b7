package selection

import "math"

// DragThreshold is the pointer travel in pixels after which a press becomes a marquee
const DragThreshold = 5.0

// Rect is a normalized screen rectangle
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect builds a rectangle from two corners in any drag direction
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the rectangle center
func (r Rect) Center() (x, y float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// Contains reports whether the pixel lies inside the rectangle
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Marquee tracks a rectangular drag started with the primary button
type Marquee struct {
	pressed  bool
	active   bool
	startX   float64
	startY   float64
	currentX float64
	currentY float64
}

// Press records the press point
func (m *Marquee) Press(x, y float64) {
	*m = Marquee{pressed: true, startX: x, startY: y, currentX: x, currentY: y}
}

// Move tracks the pointer. The marquee becomes active once the pointer has
// moved more than DragThreshold pixels from the press point.
func (m *Marquee) Move(x, y float64) bool {
	if !m.pressed {
		return false
	}
	m.currentX, m.currentY = x, y
	if !m.active && math.Hypot(x-m.startX, y-m.startY) > DragThreshold {
		m.active = true
	}
	return m.active
}

// Release ends the gesture. It returns the final rectangle and whether the
// gesture was a marquee rather than a click.
func (m *Marquee) Release() (Rect, bool) {
	rect := m.Rect()
	active := m.active
	*m = Marquee{}
	return rect, active
}

// Cancel drops any in-progress gesture
func (m *Marquee) Cancel() {
	*m = Marquee{}
}

// Pressed reports whether a press is being tracked
func (m *Marquee) Pressed() bool { return m.pressed }

// Active reports whether the drag has become a marquee
func (m *Marquee) Active() bool { return m.active }

// Start returns the press point
func (m *Marquee) Start() (x, y float64) { return m.startX, m.startY }

// Rect returns the normalized rectangle from the press point to the pointer
func (m *Marquee) Rect() Rect {
	return NewRect(m.startX, m.startY, m.currentX, m.currentY)
}
