package raytrace

import (
	"math"

	"github.com/banshee-data/radiosim/internal/geomkit"
)

// ComputeK estimates the Rician K-factor at rx from the intercepted ray
// subset, given antenna gain (spec.md §4.5). A hit is any result segment
// whose perpendicular distance from rx is < r = sqrt(gain)*lambda/(2pi) and
// whose projection falls strictly inside the segment.
func (t *Tracer) ComputeK(rx geomkit.Vector2D, gain float64) float64 {
	lambda := t.Params.Wavelength
	r := math.Sqrt(gain) * lambda / (2 * math.Pi)

	results := t.results.snapshot()

	type hitRay struct {
		comp          RayPathComponent
		distanceAlong float64
	}
	var hits []hitRay
	minReflections := math.MaxInt32

	for _, comp := range results {
		length := comp.Segment.Length()
		d := comp.Segment.DistanceFromLine(rx)
		if d >= r {
			continue
		}
		along := comp.Segment.DistanceAlongLine(rx)
		if along <= 0 || along >= length {
			continue
		}
		hits = append(hits, hitRay{comp: comp, distanceAlong: along})
		if comp.ReflectionCount < minReflections {
			minReflections = comp.ReflectionCount
		}
	}

	if len(hits) == 0 {
		return 0
	}

	var maxPower, diffPower float64
	for _, h := range hits {
		phi := 2 * math.Pi * (2*(h.distanceAlong+h.comp.DistanceSum)/lambda + float64(h.comp.ReflectionCount))
		p := h.comp.ReflectionCoefficient * h.comp.ReflectionCoefficient * (0.5 + math.Sin(phi)/math.Pi)
		if h.comp.ReflectionCount == minReflections {
			maxPower += p
		} else {
			diffPower += p
		}
	}

	if diffPower == 0 {
		return math.Inf(1)
	}
	return maxPower / diffPower
}
