package geometry

import "math"

// Epsilon is the tolerance used for parallel and zero-length checks
const Epsilon = 1e-6

// Ray is a half-line starting at Origin along Dir
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, dir Vector3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// PointAt returns the point at parameter t along the ray
func (r Ray) PointAt(t float64) Vector3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IsDegenerate reports whether the direction is too short to be used
func (r Ray) IsDegenerate() bool {
	return r.Dir.Length() <= Epsilon
}

// ClosestApproach computes the closest approach between the ray and the
// infinite line start + s*dir, where dir must be a unit vector.
// It returns the distance between the two lines, the ray parameter t and the
// line parameter s. ok is false when the lines are parallel.
func (r Ray) ClosestApproach(start, dir Vector3) (distance, t, s float64, ok bool) {
	n := r.Dir.Cross(dir)
	denom := n.LengthSquared()
	if math.Sqrt(denom) < Epsilon {
		return 0, 0, 0, false
	}

	w := start.Sub(r.Origin)
	t = w.Cross(dir).Dot(n) / denom
	s = w.Cross(r.Dir).Dot(n) / denom
	distance = math.Abs(w.Dot(n)) / math.Sqrt(denom)
	return distance, t, s, true
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. ok is false when the ray is parallel to the plane or the
// intersection lies behind the origin.
func (r Ray) IntersectPlane(point, normal Vector3) (t float64, ok bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	t = point.Sub(r.Origin).Dot(normal) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// ClosestPointOnSegment returns the point on segment ab nearest to p
func ClosestPointOnSegment(p, a, b Vector3) Vector3 {
	ab := b.Sub(a)
	lengthSq := ab.LengthSquared()
	if lengthSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// ProjectOntoPlane returns the orthogonal projection of p onto the plane
// through point with the given unit normal
func ProjectOntoPlane(p, point, normal Vector3) Vector3 {
	return p.Sub(normal.Mul(p.Sub(point).Dot(normal)))
}
