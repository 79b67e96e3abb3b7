package geometry

import "math"

// Circle is a circle embedded in 3D, lying in the plane through Center
// perpendicular to Normal
type Circle struct {
	Center Vector3
	Normal Vector3
	Radius float64
}

// NewCircle creates a circle; the normal is normalized
func NewCircle(center, normal Vector3, radius float64) Circle {
	return Circle{Center: center, Normal: normal.Normalize(), Radius: radius}
}

// RadialDistance returns the distance from the center to p after projecting
// p into the circle's plane
func (c Circle) RadialDistance(p Vector3) float64 {
	return ProjectOntoPlane(p, c.Center, c.Normal).Distance(c.Center)
}

// RimDistance returns how far p lies from the rim, measured in the plane
func (c Circle) RimDistance(p Vector3) float64 {
	return math.Abs(c.RadialDistance(p) - c.Radius)
}

// Points samples the rim at n evenly spaced angles, closing the loop by
// repeating the first point at the end
func (c Circle) Points(n int) []Vector3 {
	if n < 3 {
		n = 3
	}
	u, v := c.planeBasis()

	points := make([]Vector3, 0, n+1)
	for i := 0; i <= n; i++ {
		angle := 2 * math.Pi * float64(i%n) / float64(n)
		offset := u.Mul(math.Cos(angle) * c.Radius).Add(v.Mul(math.Sin(angle) * c.Radius))
		points = append(points, c.Center.Add(offset))
	}
	return points
}

// planeBasis returns two unit vectors spanning the circle's plane
func (c Circle) planeBasis() (Vector3, Vector3) {
	helper := AxisY
	if math.Abs(c.Normal.Dot(helper)) > 0.9 {
		helper = AxisX
	}
	u := c.Normal.Cross(helper).Normalize()
	v := c.Normal.Cross(u).Normalize()
	return u, v
}
