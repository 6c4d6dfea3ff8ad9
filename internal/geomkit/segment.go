package geomkit

import "math"

// degeneracyEpsilon is the minimum denominator magnitude below which a
// segment-segment intersection or line-direction computation is treated as
// degenerate (parallel lines, zero-length segment) and a safe default is
// returned instead of propagating NaN or Inf. See spec §7, GeometricDegeneracy.
const degeneracyEpsilon = 1e-12

// LineSegment is a closed segment from Start to End.
type LineSegment struct {
	Start Vector2D
	End   Vector2D
}

// NewLineSegment builds a segment between two points.
func NewLineSegment(start, end Vector2D) LineSegment {
	return LineSegment{Start: start, End: end}
}

// Direction returns End-Start, not normalized.
func (s LineSegment) Direction() Vector2D { return Sub(s.End, s.Start) }

// Length returns the Euclidean length of the segment.
func (s LineSegment) Length() float64 { return Norm(s.Direction()) }

// Intersect returns the unique point where s and other cross, and whether
// such a point exists. Parallel, collinear, or disjoint segments return
// (zero value, false); this also covers the degenerate zero-length case.
func (s LineSegment) Intersect(other LineSegment) (Vector2D, bool) {
	p := s.Start
	r := s.Direction()
	q := other.Start
	sv := other.Direction()

	rxs := Cross(r, sv)
	if math.Abs(rxs) < degeneracyEpsilon {
		return Vector2D{}, false
	}

	qp := Sub(q, p)
	t := Cross(qp, sv) / rxs
	u := Cross(qp, r) / rxs

	if t < -degeneracyEpsilon || t > 1+degeneracyEpsilon || u < -degeneracyEpsilon || u > 1+degeneracyEpsilon {
		return Vector2D{}, false
	}
	return Add(p, Scale(t, r)), true
}

// Reflect returns v reflected across the infinite line containing s.
// A zero-length segment cannot define a line and reflects v unchanged.
func (s LineSegment) Reflect(v Vector2D) Vector2D {
	d := s.Direction()
	n := Norm(d)
	if n < degeneracyEpsilon {
		return v
	}
	u := Scale(1/n, d)
	// reflect across the line with direction u: v' = 2*(v.u)u - v
	return Sub(Scale(2*Dot(v, u), u), v)
}

// Normal returns a unit vector perpendicular to s, picking a fixed
// orientation (rotate direction by +90deg). Used for Fresnel angle
// computation where only the containing line matters, not the sign.
func (s LineSegment) Normal() Vector2D {
	d := Unit(s.Direction())
	return Vector2D{X: -d.Y, Y: d.X}
}

// DistanceFromLine returns the perpendicular distance from p to the
// infinite line containing s. A degenerate (zero-length) segment treats p
// itself as the closest point and returns 0.
func (s LineSegment) DistanceFromLine(p Vector2D) float64 {
	d := s.Direction()
	n := Norm(d)
	if n < degeneracyEpsilon {
		return 0
	}
	return math.Abs(Cross(d, Sub(p, s.Start))) / n
}

// DistanceAlongLine returns the signed projection of p-Start onto the
// segment's unit direction, as a distance in the map's length units (not a
// fraction of the segment length). May be negative or exceed Length() when p
// projects outside the segment.
func (s LineSegment) DistanceAlongLine(p Vector2D) float64 {
	d := s.Direction()
	n := Norm(d)
	if n < degeneracyEpsilon {
		return 0
	}
	return Dot(Sub(p, s.Start), d) / n
}

// DistanceToPoint returns the shortest distance from p to any point of the
// closed segment (not just the infinite line).
func (s LineSegment) DistanceToPoint(p Vector2D) float64 {
	d := s.Direction()
	n2 := d.X*d.X + d.Y*d.Y
	if n2 < degeneracyEpsilon {
		return Distance(s.Start, p)
	}
	t := Dot(Sub(p, s.Start), d) / n2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := Add(s.Start, Scale(t, d))
	return Distance(closest, p)
}

// IntersectsCircle reports whether the minimum distance from c to any point
// of s is strictly less than r.
func (s LineSegment) IntersectsCircle(c Vector2D, r float64) bool {
	return s.DistanceToPoint(c) < r
}
