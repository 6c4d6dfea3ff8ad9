// Package classify implements the CORNER link-pair classification and its
// closed-form pathloss (spec.md §4.3).
package classify

import (
	"math"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
)

// Classifier is a stateless adapter over a *world.StaticWorld: all of its
// state lives in the method arguments, so one Classifier is safely shared
// and called concurrently by independent queries (spec.md §5).
type Classifier struct {
	World  *world.StaticWorld
	Params config.Params
}

// New builds a Classifier bound to w, using w's own parameters.
func New(w *world.StaticWorld) *Classifier {
	return &Classifier{World: w, Params: w.Params}
}

// Result is the outcome of classifying one (src,dst) query.
type Result struct {
	Class        world.Classification
	SourceLink   int
	DestLink     int
	Pathloss     float64
}

// candidateLinks implements spec.md §4.3 step 1 for a single endpoint: the
// nearest link within its own lane corridor, unioned with the connected
// links of the nearest qualifying node. Returns nil if neither qualifies —
// the caller then has no candidates for this endpoint and the pair resolves
// to OutOfRange, rather than dereferencing a nil nearest link (spec.md §9,
// Open Question: the original may deref a null nearestLinkTx; we return
// OutOfRange safely instead).
func (c *Classifier) candidateLinks(p geomkit.Vector2D) []int {
	cell := c.World.LinkGridCell(p)
	if len(cell) == 0 {
		return nil
	}

	nearestLink := -1
	nearestLinkDist := math.Inf(1)
	nearestNode := -1
	nearestNodeDist := math.Inf(1)
	seenNodes := make(map[int]struct{})

	for _, idx := range cell {
		sl := c.World.SummedLinks[idx]
		seg := sl.Segment(c.World.Nodes)

		d := seg.DistanceFromLine(p)
		corridor := c.Params.LaneWidth * float64(sl.NumLanes)
		if d < corridor && d < nearestLinkDist {
			nearestLinkDist = d
			nearestLink = idx
		}

		for _, nodeIdx := range [2]int{sl.NodeA, sl.NodeB} {
			if _, ok := seenNodes[nodeIdx]; ok {
				continue
			}
			seenNodes[nodeIdx] = struct{}{}
			node := c.World.Nodes[nodeIdx]
			nd := geomkit.Distance(node.Position, p)
			if nd < node.Size && nd < nearestNodeDist {
				nearestNodeDist = nd
				nearestNode = nodeIdx
			}
		}
	}

	if nearestLink < 0 && nearestNode < 0 {
		return nil
	}

	seen := make(map[int]struct{})
	var out []int
	add := func(idx int) {
		if _, ok := seen[idx]; !ok {
			seen[idx] = struct{}{}
			out = append(out, idx)
		}
	}
	if nearestLink >= 0 {
		add(nearestLink)
	}
	if nearestNode >= 0 {
		for _, idx := range c.World.Nodes[nearestNode].ConnectedLinks {
			add(idx)
		}
	}
	return out
}

// Classify performs steps 1-2 of spec.md §4.3: find each endpoint's
// candidate links, then pick the pairwise classification with the smallest
// tag, short-circuiting on LOS.
func (c *Classifier) Classify(src, dst geomkit.Vector2D) Result {
	srcCandidates := c.candidateLinks(src)
	dstCandidates := c.candidateLinks(dst)

	if len(srcCandidates) == 0 || len(dstCandidates) == 0 {
		return Result{Class: world.Classification{Tag: world.OutOfRange, FullNodeCount: world.InfiniteNodeCount}, SourceLink: -1, DestLink: -1}
	}

	best := world.Classification{Tag: world.OutOfRange, FullNodeCount: world.InfiniteNodeCount}
	bestSrc, bestDst := srcCandidates[0], dstCandidates[0]
	found := false

outer:
	for _, sl := range srcCandidates {
		for _, dl := range dstCandidates {
			cl := c.World.Classification(sl, dl)
			if !found || cl.Tag < best.Tag {
				best = cl
				bestSrc, bestDst = sl, dl
				found = true
			}
			if best.Tag == world.LOS {
				break outer
			}
		}
	}

	pl := c.Pathloss(src, dst, best)
	return Result{Class: best, SourceLink: bestSrc, DestLink: bestDst, Pathloss: pl}
}
