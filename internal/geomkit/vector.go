// Package geomkit provides the 2D vector, line-segment, and rectangle
// primitives shared by the spatial index, classifier, and ray tracer.
package geomkit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector2D is a point or direction in the map plane. It is a thin alias over
// gonum's r2.Vec so geometry code can use gonum's vector arithmetic directly
// while keeping a domain-specific name at package boundaries.
type Vector2D = r2.Vec

// Sub returns a-b.
func Sub(a, b Vector2D) Vector2D { return r2.Sub(a, b) }

// Add returns a+b.
func Add(a, b Vector2D) Vector2D { return r2.Add(a, b) }

// Scale returns v scaled by f.
func Scale(f float64, v Vector2D) Vector2D { return r2.Scale(f, v) }

// Dot returns the dot product of a and b.
func Dot(a, b Vector2D) float64 { return r2.Dot(a, b) }

// Cross returns the scalar (z-component) cross product of a and b.
func Cross(a, b Vector2D) float64 { return a.X*b.Y - a.Y*b.X }

// Norm returns the Euclidean length of v.
func Norm(v Vector2D) float64 { return r2.Norm(v) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2D) float64 { return Norm(Sub(a, b)) }

// DistanceSquared returns the squared Euclidean distance between a and b,
// avoiding a sqrt on hot paths that only need comparisons.
func DistanceSquared(a, b Vector2D) float64 {
	d := Sub(a, b)
	return d.X*d.X + d.Y*d.Y
}

// Unit returns v normalized to unit length. A zero vector maps to itself
// rather than producing NaN, per the GeometricDegeneracy error policy.
func Unit(v Vector2D) Vector2D {
	n := Norm(v)
	if n == 0 {
		return v
	}
	return r2.Scale(1/n, v)
}

// FromAngle returns the unit vector at angle theta radians from the x-axis.
func FromAngle(theta float64) Vector2D {
	return Vector2D{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Angle returns the angle of v from the x-axis, in [-pi, pi].
func Angle(v Vector2D) float64 { return math.Atan2(v.Y, v.X) }
