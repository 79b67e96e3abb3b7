package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/quadview/pkg/viewer"
)

// inputState tracks which pane owns the pointer while a button is held
type inputState struct {
	captured *pane
	held     int
}

var buttons = []struct {
	rl     rl.MouseButton
	button viewer.Button
}{
	{rl.MouseLeftButton, viewer.ButtonPrimary},
	{rl.MouseRightButton, viewer.ButtonSecondary},
	{rl.MouseMiddleButton, viewer.ButtonMiddle},
}

var keys = map[int32]viewer.Key{
	rl.KeyW:          viewer.KeyForward,
	rl.KeyUp:         viewer.KeyForward,
	rl.KeyS:          viewer.KeyBack,
	rl.KeyDown:       viewer.KeyBack,
	rl.KeyA:          viewer.KeyLeft,
	rl.KeyLeft:       viewer.KeyLeft,
	rl.KeyD:          viewer.KeyRight,
	rl.KeyRight:      viewer.KeyRight,
	rl.KeyLeftShift:  viewer.KeyShift,
	rl.KeyRightShift: viewer.KeyShift,
	rl.KeyF:          viewer.KeyFocus,
	rl.KeyHome:       viewer.KeyReset,
	rl.KeyM:          viewer.KeyCycleMode,
	rl.KeyTab:        viewer.KeyCycleOperation,
	rl.KeyL:          viewer.KeyToggleSpace,
	rl.KeyEscape:     viewer.KeyCancel,
}

func (a *App) paneAt(pos rl.Vector2) *pane {
	for _, p := range a.panes {
		if p.contains(pos) {
			return p
		}
	}
	return nil
}

func modifiers() viewer.Modifier {
	var m viewer.Modifier
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= viewer.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		m |= viewer.ModControl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		m |= viewer.ModAlt
	}
	return m
}

// handleInput translates raylib mouse and key state into pane events
func (a *App) handleInput() {
	pos := rl.GetMousePosition()
	target := a.input.captured
	if target == nil {
		target = a.paneAt(pos)
	}
	if target == nil {
		return
	}

	x, y := target.local(pos)
	mods := modifiers()
	c := target.controller

	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.rl) {
			if a.input.held == 0 {
				a.input.captured = target
			}
			a.input.held++
			c.PointerPress(viewer.PointerEvent{X: x, Y: y, Button: b.button, Mods: mods})
		}
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		c.PointerMove(viewer.PointerEvent{X: x, Y: y, Mods: mods})
	}

	for _, b := range buttons {
		if rl.IsMouseButtonReleased(b.rl) {
			c.PointerRelease(viewer.PointerEvent{X: x, Y: y, Button: b.button, Mods: mods})
			if a.input.held > 0 {
				a.input.held--
			}
			if a.input.held == 0 {
				a.input.captured = nil
			}
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Wheel(float64(wheel))
	}

	for rk, k := range keys {
		if rl.IsKeyPressed(rk) {
			c.KeyDown(k)
		}
		if rl.IsKeyReleased(rk) {
			c.KeyUp(k)
		}
	}

	if rl.IsKeyPressed(rl.KeyG) {
		a.workspace.ToggleMicrogrid()
	}
}
