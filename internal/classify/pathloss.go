package classify

import (
	"math"

	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
)

// denomEpsilon clamps pathloss denominators away from zero so a coincident
// point (e.g. receiver exactly on a node) never propagates NaN or Inf to
// callers (spec.md §7, Numeric underflow).
const denomEpsilon = 1e-6

func clampMin(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

// Pathloss evaluates the closed-form CORNER pathloss for cl given the query
// endpoints (spec.md §4.3). OutOfRange returns 0 (no signal).
func (c *Classifier) Pathloss(src, dst geomkit.Vector2D, cl world.Classification) float64 {
	lambda := c.Params.Wavelength
	lambda2over4pi := c.Params.Lambda2Over4PiSquared()
	rho := c.Params.LossPerReflection
	laneWidth := c.Params.LaneWidth

	switch cl.Tag {
	case world.LOS:
		d2 := clampMin(geomkit.DistanceSquared(src, dst), denomEpsilon)
		return lambda2over4pi / d2

	case world.NLOS1:
		n1 := c.World.Nodes[cl.NodeSet[0]].Position
		rm := clampMin(geomkit.Distance(src, n1), denomEpsilon)
		rs := clampMin(geomkit.Distance(n1, dst), denomEpsilon)
		Wm := cl.MainLanes * laneWidth
		Ws := cl.SideLanes * laneWidth

		nMin := math.Floor(2 * math.Sqrt(rm*rs/clampMin(Ws*Wm, denomEpsilon)))
		PLr := lambda2over4pi * math.Pow(rho, 2*nMin) / clampMin((rm+rs)*(rm+rs), denomEpsilon)

		lo, hi := rm, rs
		if hi < lo {
			lo, hi = hi, lo
		}
		PLd := lambda2over4pi * lambda / clampMin(4*lo*hi*hi, denomEpsilon)

		return PLr + PLd

	case world.NLOS2:
		n1 := c.World.Nodes[cl.NodeSet[0]].Position
		n2 := c.World.Nodes[cl.NodeSet[1]].Position
		rm := clampMin(geomkit.Distance(src, n1), denomEpsilon)
		rs := clampMin(geomkit.Distance(n1, n2), denomEpsilon)
		rp := clampMin(geomkit.Distance(n2, dst), denomEpsilon)
		rsp := rs + rp

		Wm := cl.MainLanes * laneWidth
		Ws := cl.SideLanes * laneWidth
		Wp := cl.ParaLanes * laneWidth

		t := math.Sqrt(clampMin(rs*Wm*Wp, denomEpsilon) / clampMin(Ws*(rm*Wp+rp*Wm), denomEpsilon))
		nMin := math.Floor(rm*t/clampMin(Wm, denomEpsilon) + rs/clampMin(Ws*t, denomEpsilon) + rp*t/clampMin(Wp, denomEpsilon))
		n := math.Floor(rp * rs / clampMin(Wp*Ws, denomEpsilon))

		PLr := lambda2over4pi * math.Pow(rho, 2*nMin) / clampMin((rsp+rm)*(rsp+rm), denomEpsilon)

		// PLdd: the rp factor is squared when rm is the smaller radius,
		// linear otherwise (spec.md §4.3 mirrors the asymmetry exactly).
		loRmRs, hiRmRs := rm, rs
		rpFactor := rp
		if hiRmRs < loRmRs {
			loRmRs, hiRmRs = hiRmRs, loRmRs
		}
		if rm < rs {
			rpFactor = rp * rp
		}
		PLdd := lambda2over4pi * lambda * lambda / clampMin(16*loRmRs*hiRmRs*rpFactor, denomEpsilon)

		// PLrd: when rs < rp, rs multiplies the numerator and rp enters the
		// denominator squared; otherwise the numerator factor is 1 and rp
		// enters the denominator linearly.
		rsNumerator := 1.0
		rpDenomFactor := rp
		if rs < rp {
			rsNumerator = rs
			rpDenomFactor = rp * rp
		}
		PLrd := lambda2over4pi * math.Pow(rho, 2*nMin) * lambda * rsNumerator / clampMin(4*(rs+rm)*(rs+rm)*rpDenomFactor, denomEpsilon)

		// PLdr: the smaller of rm,rsp contributes linearly, the larger
		// quadratically, via the ratio term (spec.md §4.3).
		rmRatio := rm / rsp
		if rm < rsp {
			rmRatio = 1
		}
		PLdr := math.Pow(rho, 2*n) * lambda2over4pi * lambda / clampMin(4*rm*rsp*rsp*rmRatio, denomEpsilon)

		return PLr + PLdd + PLrd + PLdr

	default: // OutOfRange
		return 0
	}
}
