package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/quadview/pkg/analysis"
	"github.com/philipparndt/quadview/pkg/viewer"
)

const (
	labelFontSize = 14
	labelPadding  = 4
)

// label is a boxed text drawn centered on a screen position
type label struct {
	text  string
	pos   rl.Vector2
	color rl.Color
}

// draw renders the label and returns its bounding rectangle
func (l label) draw(font rl.Font) rl.Rectangle {
	textSize := rl.MeasureTextEx(font, l.text, labelFontSize, 1)

	rect := rl.Rectangle{
		X:      l.pos.X - textSize.X/2 - labelPadding,
		Y:      l.pos.Y - textSize.Y/2 - labelPadding,
		Width:  textSize.X + 2*labelPadding,
		Height: textSize.Y + 2*labelPadding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, 2, l.color)
	rl.DrawTextEx(font, l.text, rl.NewVector2(rect.X+labelPadding, rect.Y+labelPadding), labelFontSize, 1, l.color)

	return rect
}

// drawMeasurement labels the distance between the first two selected points.
// Must be called between BeginTextureMode and EndTextureMode, outside 3D mode.
func (p *pane) drawMeasurement(m analysis.Measurement) {
	mid := m.From.Add(m.To).Mul(0.5)
	x, y, visible := p.controller.Camera().WorldToScreen(mid)
	if !visible {
		return
	}
	label{
		text:  fmt.Sprintf("%.3f", m.Distance),
		pos:   rl.NewVector2(float32(x), float32(y)),
		color: rgba(viewer.ColorSelection),
	}.draw(rl.GetFontDefault())
}
