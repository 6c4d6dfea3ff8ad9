package raytrace

import (
	"math"
	"sync/atomic"

	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
)

type hit struct {
	point    geomkit.Vector2D
	distance float64
	building world.Building
	edge     geomkit.LineSegment
}

// trace intersects ray against every building edge in the snapshot bucket
// list (skipping the building the ray just bounced off), keeping the closest
// qualifying hit. With no hit, the ray is appended unchanged; with a hit, it
// is truncated, published, and — if remaining power budget allows — a
// reflected ray is enqueued (spec.md §4.5).
func (t *Tracer) trace(ray RayPathComponent) {
	minDistance := ray.Segment.Length()
	rayAABB := aabbOf(ray.Segment).Expanded(1e-6)
	minSelfDistance := t.Params.LaneWidth * minReflectionDistanceFactor

	var best *hit
	for _, bid := range t.bucketSnapshot {
		if bid == ray.LastReflectorIndex {
			continue
		}
		b := t.World.Buildings[bid]
		for _, edge := range b.Edges {
			if !rayAABB.ContainsSegment(edge) {
				continue
			}
			p, ok := ray.Segment.Intersect(edge)
			if !ok {
				continue
			}
			d := geomkit.Distance(ray.Segment.Start, p)
			if d < minSelfDistance || d >= minDistance {
				continue
			}
			minDistance = d
			hb := b
			he := edge
			best = &hit{point: p, distance: d, building: hb, edge: he}
		}
	}

	if best == nil {
		t.results.append(ray)
		return
	}

	truncated := ray
	truncated.Segment = geomkit.NewLineSegment(ray.Segment.Start, best.point)
	truncated.ReflectionCount = ray.ReflectionCount + 1
	truncated.DistanceSum = ray.DistanceSum + truncated.Segment.Length()
	t.results.append(truncated)

	theta := incidenceAngle(ray.Segment, best.edge)
	eps := best.building.Permittivity
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)
	root := math.Sqrt(math.Max(eps-cosT*cosT, 0))
	denom := root + eps*sinT
	var reflCoefTerm float64
	if denom != 0 {
		reflCoefTerm = (root - eps*sinT) / denom
	}
	newCoef := ray.ReflectionCoefficient * reflCoefTerm

	remaining := ray.ReflectionCoefficient*t.freeSpaceRange - truncated.DistanceSum
	if remaining <= 0 {
		return
	}

	reflectedDir := best.edge.Reflect(ray.Segment.Direction())
	reflectedDir = geomkit.Unit(reflectedDir)
	newEnd := geomkit.Add(best.point, geomkit.Scale(remaining, reflectedDir))

	atomic.AddInt64(&t.inFlight, 1)
	t.queue.push(RayPathComponent{
		Segment:               geomkit.NewLineSegment(best.point, newEnd),
		ReflectionCount:       truncated.ReflectionCount,
		DistanceSum:           truncated.DistanceSum,
		ReflectionCoefficient: newCoef,
		LastReflectorIndex:    best.building.ID,
	})
}

// incidenceAngle returns theta, the angle between the ray direction and the
// edge's normal, mapped into [0, pi/2] (spec.md §4.5 step 2).
func incidenceAngle(ray geomkit.LineSegment, edge geomkit.LineSegment) float64 {
	d := geomkit.Unit(ray.Direction())
	n := edge.Normal()
	cosTheta := geomkit.Dot(d, n)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	// acos(|cos|) is already the angle folded into [0, pi/2], equivalent to
	// spec.md's theta <- min(theta, pi-theta).
	return math.Acos(math.Abs(cosTheta))
}

// aabbOf returns the axis-aligned bounding box of s.
func aabbOf(s geomkit.LineSegment) geomkit.Rect {
	lo := geomkit.Vector2D{X: math.Min(s.Start.X, s.End.X), Y: math.Min(s.Start.Y, s.End.Y)}
	hi := geomkit.Vector2D{X: math.Max(s.Start.X, s.End.X), Y: math.Max(s.Start.Y, s.End.Y)}
	return geomkit.Rect{Location: lo, Size: geomkit.Vector2D{X: hi.X - lo.X, Y: hi.Y - lo.Y}}
}
