package viewer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func countColor(img *image.RGBA, col color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestPainterLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	p := NewPainter(img)
	red := color.RGBA{255, 0, 0, 255}

	p.Line(2, 5, 12, 5, red)
	assert.Equal(t, 11, countColor(img, red))
	assert.Equal(t, red, img.RGBAAt(2, 5))
	assert.Equal(t, red, img.RGBAAt(12, 5))
}

func TestPainterClipsAndSkipsInvalid(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	p := NewPainter(img)
	red := color.RGBA{255, 0, 0, 255}

	p.Line(-5, 3, 15, 3, red)
	assert.Equal(t, 10, countColor(img, red))

	p.Clear(ColorBackground)
	p.Line(math.NaN(), 0, 5, 5, red)
	p.Line(0, 0, math.Inf(1), 5, red)
	p.Marker(math.NaN(), 1, 3, red)
	assert.Equal(t, 0, countColor(img, red))
}

func TestPainterRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	p := NewPainter(img)

	p.Rect(2, 2, 6, 5, ColorMarquee)
	// perimeter of a 5x4 pixel box
	assert.Equal(t, 14, countColor(img, ColorMarquee))
	assert.NotEqual(t, ColorMarquee, img.RGBAAt(4, 3))
}

func TestPainterMarker(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	p := NewPainter(img)

	p.Marker(10, 10, 3, ColorSelection)
	assert.Equal(t, ColorSelection, img.RGBAAt(10, 10))
	assert.Equal(t, ColorSelection, img.RGBAAt(10, 8))
	assert.NotEqual(t, ColorSelection, img.RGBAAt(0, 0))
}

func TestPainterWorldMarker(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	p := NewPainter(img)

	cam := NewCamera(Front, nil)
	cam.SetViewport(64, 64)

	p.WorldMarker(cam, geometry.Vector3{}, 2, ColorPrimary)
	assert.Equal(t, ColorPrimary, img.RGBAAt(32, 32))
}

func TestPainterGrid(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	p := NewPainter(img)
	p.Clear(ColorBackground)

	cam := NewCamera(Top, nil)
	cam.SetViewport(64, 64)

	p.Grid(cam, 8, 4)
	assert.Positive(t, countColor(img, ColorGridMajor))
	assert.Positive(t, countColor(img, ColorGrid))
}
