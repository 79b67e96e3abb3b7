package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(100, 80, 20, 10)

	assert.Equal(t, Rect{MinX: 20, MinY: 10, MaxX: 100, MaxY: 80}, r)
	assert.Equal(t, 80.0, r.Width())
	assert.Equal(t, 70.0, r.Height())

	x, y := r.Center()
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 45.0, y)
	assert.True(t, r.Contains(50, 50))
	assert.False(t, r.Contains(10, 50))
}

func TestMarqueeThreshold(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  float64
		marquee bool
	}{
		{"no movement", 0, 0, false},
		{"under threshold", 3, 3, false},
		{"exactly threshold", 5, 0, false},
		{"over threshold", 4, 4, true},
		{"large drag", -120, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Marquee
			m.Press(200, 200)
			m.Move(200+tt.dx, 200+tt.dy)

			_, wasMarquee := m.Release()
			assert.Equal(t, tt.marquee, wasMarquee)
			assert.False(t, m.Pressed())
		})
	}
}

func TestMarqueeStaysActiveWhenPointerReturns(t *testing.T) {
	var m Marquee
	m.Press(0, 0)
	assert.True(t, m.Move(10, 10))
	assert.True(t, m.Move(1, 1))

	rect, wasMarquee := m.Release()
	assert.True(t, wasMarquee)
	assert.Equal(t, NewRect(0, 0, 1, 1), rect)
}

func TestMarqueeMoveWithoutPress(t *testing.T) {
	var m Marquee
	assert.False(t, m.Move(50, 50))
	m.Press(0, 0)
	m.Cancel()
	assert.False(t, m.Active())
	assert.False(t, m.Pressed())
}
