package geometry

import (
	"math"
	"testing"
)

func TestRayClosestApproach(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 0), NewVector3(1, 0, 0))

	distance, rayT, lineS, ok := ray.ClosestApproach(NewVector3(2, 0, 1), AxisY)
	if !ok {
		t.Fatalf("ClosestApproach failed: lines reported parallel")
	}
	if math.Abs(distance-1) > 1e-10 {
		t.Errorf("distance failed: expected 1, got %v", distance)
	}
	if math.Abs(rayT-2) > 1e-10 {
		t.Errorf("ray parameter failed: expected 2, got %v", rayT)
	}
	if math.Abs(lineS) > 1e-10 {
		t.Errorf("line parameter failed: expected 0, got %v", lineS)
	}
}

func TestRayClosestApproachParallel(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 0), NewVector3(1, 0, 0))

	if _, _, _, ok := ray.ClosestApproach(NewVector3(0, 1, 0), AxisX); ok {
		t.Errorf("ClosestApproach failed: parallel lines should be rejected")
	}
}

func TestRayIntersectPlane(t *testing.T) {
	ray := NewRay(NewVector3(0, 5, 0), NewVector3(0, -1, 0))

	tHit, ok := ray.IntersectPlane(Vector3{}, AxisY)
	if !ok || math.Abs(tHit-5) > 1e-10 {
		t.Errorf("IntersectPlane failed: expected t=5, got %v (ok=%v)", tHit, ok)
	}

	away := NewRay(NewVector3(0, 5, 0), NewVector3(0, 1, 0))
	if _, ok := away.IntersectPlane(Vector3{}, AxisY); ok {
		t.Errorf("IntersectPlane failed: plane behind the origin should be rejected")
	}

	parallel := NewRay(NewVector3(0, 5, 0), NewVector3(1, 0, 0))
	if _, ok := parallel.IntersectPlane(Vector3{}, AxisY); ok {
		t.Errorf("IntersectPlane failed: parallel ray should be rejected")
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(10, 0, 0)

	tests := []struct {
		name     string
		p        Vector3
		expected Vector3
	}{
		{"inside", NewVector3(4, 3, 0), NewVector3(4, 0, 0)},
		{"before start", NewVector3(-5, 1, 0), a},
		{"after end", NewVector3(15, -1, 0), b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, a, b)
			if got.Distance(tt.expected) > 1e-10 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCircleRimDistance(t *testing.T) {
	c := NewCircle(Vector3{}, AxisZ, 2)

	if d := c.RimDistance(NewVector3(2, 0, 5)); math.Abs(d) > 1e-10 {
		t.Errorf("RimDistance failed: point above the rim should be on it, got %v", d)
	}
	if d := c.RimDistance(NewVector3(0, 0.5, 0)); math.Abs(d-1.5) > 1e-10 {
		t.Errorf("RimDistance failed: expected 1.5, got %v", d)
	}

	points := c.Points(16)
	if len(points) != 17 {
		t.Fatalf("Points failed: expected 17 samples, got %d", len(points))
	}
	for _, p := range points {
		if math.Abs(p.Distance(c.Center)-2) > 1e-9 {
			t.Errorf("Points failed: sample %v not on the rim", p)
		}
	}
}
