package viewer

import "image"

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// Modifier is a bit set of held modifier keys
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
)

// Additive reports whether the modifiers request additive selection
func (m Modifier) Additive() bool {
	return m&(ModShift|ModControl) != 0
}

// PointerEvent is a pointer press, move or release in pane pixels
type PointerEvent struct {
	X, Y   float64
	Button Button
	Mods   Modifier
}

// Key is an editor key, already mapped from the toolkit's key names
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyLeft
	KeyRight
	KeyShift
	KeyFocus
	KeyReset
	KeyCycleMode
	KeyCycleOperation
	KeyToggleSpace
	KeyCancel
)

// InputHandler receives a pane's input and paints its overlay
type InputHandler interface {
	Resize(width, height float64)
	PointerPress(e PointerEvent)
	PointerMove(e PointerEvent)
	PointerRelease(e PointerEvent)
	Wheel(steps float64)
	KeyDown(k Key)
	KeyUp(k Key)
	Overlay(img *image.RGBA)
}
