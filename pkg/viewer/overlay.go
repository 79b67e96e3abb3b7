package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/quadview/pkg/geometry"
)

// Overlay colors
var (
	ColorBackground = color.RGBA{30, 30, 34, 255}
	ColorGrid       = color.RGBA{52, 52, 58, 255}
	ColorGridMajor  = color.RGBA{72, 72, 80, 255}
	ColorSelection  = color.RGBA{255, 200, 40, 255}
	ColorPrimary    = color.RGBA{255, 255, 255, 255}
	ColorMarquee    = color.RGBA{90, 160, 255, 255}
	ColorMesh       = color.RGBA{120, 120, 130, 255}
	AxisColors      = [3]color.RGBA{
		{230, 60, 60, 255},
		{60, 200, 60, 255},
		{70, 110, 240, 255},
	}
	ColorLocked = color.RGBA{90, 90, 90, 255}
)

// Painter draws 2D primitives into a pane image. All drawing is clipped to the image.
type Painter struct {
	img *image.RGBA
}

// NewPainter wraps img
func NewPainter(img *image.RGBA) *Painter {
	return &Painter{img: img}
}

// Image returns the target image
func (p *Painter) Image() *image.RGBA {
	return p.img
}

// Clear fills the whole image
func (p *Painter) Clear(col color.RGBA) {
	draw.Draw(p.img, p.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// Line draws a line between two pixel positions
func (p *Painter) Line(x1, y1, x2, y2 float64, col color.RGBA) {
	if !finite(x1, y1, x2, y2) {
		return
	}
	// keep Bresenham's integer walk bounded for points far off screen
	const limit = 1 << 20
	if math.Abs(x1) > limit || math.Abs(y1) > limit || math.Abs(x2) > limit || math.Abs(y2) > limit {
		return
	}
	drawLine(p.img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
}

// Rect draws the outline of an axis-aligned rectangle
func (p *Painter) Rect(minX, minY, maxX, maxY float64, col color.RGBA) {
	p.Line(minX, minY, maxX, minY, col)
	p.Line(maxX, minY, maxX, maxY, col)
	p.Line(maxX, maxY, minX, maxY, col)
	p.Line(minX, maxY, minX, minY, col)
}

// Marker draws a filled diamond centered on a pixel
func (p *Painter) Marker(x, y, size float64, col color.RGBA) {
	if !finite(x, y) {
		return
	}
	fillTriangle(p.img, x-size, y, x, y-size, x+size, y, col)
	fillTriangle(p.img, x-size, y, x, y+size, x+size, y, col)
}

// Polyline draws connected segments through pts
func (p *Painter) Polyline(pts [][2]float64, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		p.Line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], col)
	}
}

// WorldLine projects a world segment through the camera and draws it. Segments
// with an endpoint behind the camera are skipped.
func (p *Painter) WorldLine(c *Camera, a, b geometry.Vector3, col color.RGBA) {
	x1, y1, ok1 := c.WorldToScreen(a)
	x2, y2, ok2 := c.WorldToScreen(b)
	if !ok1 || !ok2 {
		return
	}
	p.Line(x1, y1, x2, y2, col)
}

// WorldMarker projects a world point and draws a marker there
func (p *Painter) WorldMarker(c *Camera, point geometry.Vector3, size float64, col color.RGBA) {
	x, y, ok := c.WorldToScreen(point)
	if !ok {
		return
	}
	p.Marker(x, y, size, col)
}

// Grid draws the ground grid for the camera. Ortho panes get lines in their
// view plane around the target; the perspective pane gets the XZ plane.
func (p *Painter) Grid(c *Camera, spacing float64, lines int) {
	if spacing <= 0 || lines <= 0 {
		return
	}
	state := c.State()

	var u, v geometry.Vector3
	switch state.Type {
	case Top:
		u, v = geometry.AxisX, geometry.AxisZ
	case Front:
		u, v = geometry.AxisX, geometry.AxisY
	case Side:
		u, v = geometry.AxisZ, geometry.AxisY
	default:
		u, v = geometry.AxisX, geometry.AxisZ
	}

	// snap the grid origin to the spacing so lines stay put while panning
	center := geometry.Vector3{}
	if state.Type.IsOrtho() {
		center = u.Mul(math.Round(state.Pan.Dot(u)/spacing) * spacing).
			Add(v.Mul(math.Round(state.Pan.Dot(v)/spacing) * spacing))
	}

	extent := float64(lines) * spacing
	for i := -lines; i <= lines; i++ {
		col := ColorGrid
		if i%8 == 0 {
			col = ColorGridMajor
		}
		offset := float64(i) * spacing
		p.WorldLine(c,
			center.Add(u.Mul(offset)).Sub(v.Mul(extent)),
			center.Add(u.Mul(offset)).Add(v.Mul(extent)), col)
		p.WorldLine(c,
			center.Add(v.Mul(offset)).Sub(u.Mul(extent)),
			center.Add(v.Mul(offset)).Add(u.Mul(extent)), col)
	}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// fillTriangle fills a triangle using a scanline walk
func fillTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3 float64, col color.RGBA) {
	vertices := [3][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}

	// sort by Y
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1 = vertices[0][0], vertices[0][1]
	x2, y2 = vertices[1][0], vertices[1][1]
	x3, y3 = vertices[2][0], vertices[2][1]

	bounds := img.Bounds()
	edges := [3][4]float64{{x1, y1, x2, y2}, {x2, y2, x3, y3}, {x1, y1, x3, y3}}

	for y := int(math.Max(float64(bounds.Min.Y), math.Ceil(y1))); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		xs := make([]float64, 0, 3)
		for _, e := range edges {
			if e[1] != e[3] && fy >= e[1] && fy <= e[3] {
				t := (fy - e[1]) / (e[3] - e[1])
				xs = append(xs, e[0]+t*(e[2]-e[0]))
			}
		}
		if len(xs) < 2 {
			continue
		}

		xStart, xEnd := xs[0], xs[0]
		for _, x := range xs[1:] {
			xStart = math.Min(xStart, x)
			xEnd = math.Max(xEnd, x)
		}
		xStart = math.Max(float64(bounds.Min.X), math.Ceil(xStart))
		xEnd = math.Min(float64(bounds.Max.X-1), xEnd)

		for x := int(xStart); x <= int(xEnd); x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
