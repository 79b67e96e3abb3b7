package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Pane is a fyne widget showing one viewport. It rasterizes the handler's
// overlay and forwards mouse, scroll and key input in pixel coordinates.
type Pane struct {
	widget.BaseWidget
	handler InputHandler
	raster  *canvas.Raster
	scale   float64
	pressed bool
	button  Button
	mods    Modifier
}

// NewPane creates a pane for the handler
func NewPane(handler InputHandler) *Pane {
	p := &Pane{handler: handler, scale: 1}
	p.raster = canvas.NewRaster(p.draw)
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer creates the renderer for the widget
func (p *Pane) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

// MinSize keeps four panes usable on small windows
func (p *Pane) MinSize() fyne.Size {
	return fyne.NewSize(240, 180)
}

// Redraw repaints the overlay
func (p *Pane) Redraw() {
	p.raster.Refresh()
}

// draw is the raster generator; w and h are device pixels
func (p *Pane) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	if size := p.Size(); size.Width > 0 {
		p.scale = float64(w) / float64(size.Width)
	}
	p.handler.Resize(float64(w), float64(h))
	p.handler.Overlay(img)
	return img
}

func (p *Pane) event(pos fyne.Position) PointerEvent {
	return PointerEvent{
		X:      float64(pos.X) * p.scale,
		Y:      float64(pos.Y) * p.scale,
		Button: p.button,
		Mods:   p.mods,
	}
}

// MouseDown starts a press with the pressed button
func (p *Pane) MouseDown(e *desktop.MouseEvent) {
	p.button = buttonFrom(e.Button)
	p.mods = modifiersFrom(e.Modifier)
	p.pressed = true
	p.handler.PointerPress(p.event(e.Position))
	p.Redraw()
}

// MouseUp ends the press
func (p *Pane) MouseUp(e *desktop.MouseEvent) {
	if !p.pressed {
		return
	}
	p.pressed = false
	p.handler.PointerRelease(p.event(e.Position))
	p.Redraw()
}

// MouseIn is required by desktop.Hoverable
func (p *Pane) MouseIn(*desktop.MouseEvent) {}

// MouseMoved forwards hover and non-primary drags
func (p *Pane) MouseMoved(e *desktop.MouseEvent) {
	p.handler.PointerMove(p.event(e.Position))
	if p.pressed {
		p.Redraw()
	}
}

// MouseOut is required by desktop.Hoverable
func (p *Pane) MouseOut() {}

// Dragged forwards primary drags
func (p *Pane) Dragged(e *fyne.DragEvent) {
	p.handler.PointerMove(p.event(e.Position))
	p.Redraw()
}

// DragEnd is handled by MouseUp
func (p *Pane) DragEnd() {}

// Tapped requests focus so the pane receives keys
func (p *Pane) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(p); c != nil {
		c.Focus(p)
	}
}

// Scrolled dollies the camera
func (p *Pane) Scrolled(e *fyne.ScrollEvent) {
	p.handler.Wheel(float64(e.Scrolled.DY) / 10)
	p.Redraw()
}

// FocusGained is required by fyne.Focusable
func (p *Pane) FocusGained() {}

// FocusLost releases held keys so fly motion stops
func (p *Pane) FocusLost() {
	for _, k := range []Key{KeyForward, KeyBack, KeyLeft, KeyRight, KeyShift} {
		p.handler.KeyUp(k)
	}
}

// TypedRune is required by fyne.Focusable
func (p *Pane) TypedRune(rune) {}

// TypedKey is required by fyne.Focusable; edges are handled in KeyDown/KeyUp
func (p *Pane) TypedKey(*fyne.KeyEvent) {}

// KeyDown forwards a mapped key press
func (p *Pane) KeyDown(e *fyne.KeyEvent) {
	if k := keyFrom(e.Name); k != KeyNone {
		p.handler.KeyDown(k)
		p.Redraw()
	}
}

// KeyUp forwards a mapped key release
func (p *Pane) KeyUp(e *fyne.KeyEvent) {
	if k := keyFrom(e.Name); k != KeyNone {
		p.handler.KeyUp(k)
	}
}

func buttonFrom(b desktop.MouseButton) Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return ButtonSecondary
	case desktop.MouseButtonTertiary:
		return ButtonMiddle
	}
	return ButtonPrimary
}

func modifiersFrom(m fyne.KeyModifier) Modifier {
	var mods Modifier
	if m&fyne.KeyModifierShift != 0 {
		mods |= ModShift
	}
	if m&fyne.KeyModifierControl != 0 || m&fyne.KeyModifierSuper != 0 {
		mods |= ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= ModAlt
	}
	return mods
}

// keyFrom maps toolkit key names to editor keys
func keyFrom(name fyne.KeyName) Key {
	switch name {
	case fyne.KeyW, fyne.KeyUp:
		return KeyForward
	case fyne.KeyS, fyne.KeyDown:
		return KeyBack
	case fyne.KeyA, fyne.KeyLeft:
		return KeyLeft
	case fyne.KeyD, fyne.KeyRight:
		return KeyRight
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		return KeyShift
	case fyne.KeyF:
		return KeyFocus
	case fyne.KeyHome:
		return KeyReset
	case fyne.KeyM:
		return KeyCycleMode
	case fyne.KeyTab:
		return KeyCycleOperation
	case fyne.KeyL:
		return KeyToggleSpace
	case fyne.KeyEscape:
		return KeyCancel
	}
	return KeyNone
}

var (
	_ fyne.Draggable    = (*Pane)(nil)
	_ fyne.Scrollable   = (*Pane)(nil)
	_ fyne.Tappable     = (*Pane)(nil)
	_ desktop.Mouseable = (*Pane)(nil)
	_ desktop.Hoverable = (*Pane)(nil)
	_ desktop.Keyable   = (*Pane)(nil)
)
