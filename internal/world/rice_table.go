package world

import "github.com/banshee-data/radiosim/internal/geomkit"

// KFactor searches the Rice-table entry for the given link pair for the
// sample whose (srcPos, dstPos) jointly minimises squared distance to the
// query, and returns its stored K. A missing entry returns 0 (Rayleigh).
// +Inf represents pure LOS with no diffuse power (spec.md §4.2).
func (w *StaticWorld) KFactor(pair LinkPair, srcPos, dstPos geomkit.Vector2D) float64 {
	samples, ok := w.riceTable[pair]
	if !ok || len(samples) == 0 {
		return 0
	}
	best := samples[0]
	bestDist := geomkit.DistanceSquared(srcPos, best.SrcPos) + geomkit.DistanceSquared(dstPos, best.DstPos)
	for _, s := range samples[1:] {
		d := geomkit.DistanceSquared(srcPos, s.SrcPos) + geomkit.DistanceSquared(dstPos, s.DstPos)
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best.K
}

// HasRiceEntry reports whether any precomputed samples exist for pair.
func (w *StaticWorld) HasRiceEntry(pair LinkPair) bool {
	samples, ok := w.riceTable[pair]
	return ok && len(samples) > 0
}
