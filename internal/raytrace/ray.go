package raytrace

import "github.com/banshee-data/radiosim/internal/geomkit"

// RayPathComponent is one traced or reflected segment of a ray. Rays are
// value types with no aliased mutable state, so once popped off the queue a
// worker can compute freely without holding any lock (spec.md §5).
type RayPathComponent struct {
	Segment               geomkit.LineSegment
	ReflectionCount       int
	DistanceSum           float64 // path length of every prior reflected segment; does not include Segment's own length until a reflection truncates it
	ReflectionCoefficient float64 // in (-1,1], amplitude scale applied so far
	LastReflectorIndex    int     // building id this ray just bounced off, or -1
}
