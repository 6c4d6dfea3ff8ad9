// Package world loads the static road/building geometry and the optional
// precomputed Rice table, derives the spatial indices (map rect, building
// buckets, link grid), and exposes read-only queries shared by the classifier and
// ray tracer. A *StaticWorld is immutable after construction and may be
// shared across any number of goroutines without synchronization.
package world

import (
	"math"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
)

// InfiniteNodeCount represents the synthesised OutOfRange classification's
// "fullNodeCount = infinity" (spec.md §3).
const InfiniteNodeCount = math.MaxInt32

// Node is a road intersection or endpoint.
type Node struct {
	Index          int
	Position       geomkit.Vector2D
	ConnectedLinks []int   // indices into SummedLinks, in order of first attachment
	Size           float64 // intersection radius
}

// Link is one physical road segment between two nodes, as loaded from the
// links file. Immutable after load.
type Link struct {
	Index    int
	NodeA    int
	NodeB    int
	NumLanes int
	Flow     float64
	Speed    float64
}

// SummedLink aggregates every Link sharing the same unordered node-pair into
// a single virtual road (spec.md §3, GLOSSARY: Summed link).
type SummedLink struct {
	Index    int
	NodeA    int
	NodeB    int
	NumLanes int
	Flow     float64
	Speed    float64
}

// Segment returns the line segment between the summed link's endpoint
// positions, given the owning world's node table.
func (s SummedLink) Segment(nodes []Node) geomkit.LineSegment {
	return geomkit.NewLineSegment(nodes[s.NodeA].Position, nodes[s.NodeB].Position)
}

// ClassTag is the CORNER classification outcome, ordered by severity: a
// smaller tag is always a better (shorter, more favorable) class.
type ClassTag int

const (
	LOS ClassTag = iota
	NLOS1
	NLOS2
	OutOfRange
)

func (t ClassTag) String() string {
	switch t {
	case LOS:
		return "LOS"
	case NLOS1:
		return "NLOS1"
	case NLOS2:
		return "NLOS2"
	default:
		return "OutOfRange"
	}
}

// Classification is the precomputed (or synthesised) CORNER class for an
// unordered pair of summed links.
type Classification struct {
	Tag           ClassTag
	FullNodeCount int
	NodeSet       []int // len == int(Tag) for every loaded non-LOS entry; empty for LOS and the synthesised OutOfRange
	MainLanes     float64
	SideLanes     float64
	ParaLanes     float64 // only meaningful for NLOS2
}

// outOfRangeClassification is the synthesised value for any link pair with
// no entry in the classification table (spec.md §3, §4.2).
func outOfRangeClassification() Classification {
	return Classification{Tag: OutOfRange, FullNodeCount: InfiniteNodeCount}
}

// Building is a closed polygon obstacle with a Fresnel-relevant material.
type Building struct {
	ID            int
	Edges         []geomkit.LineSegment // consecutive ring edges, in load order
	Permittivity  float64
	MaxHeight     float64
	HeightStdDev  float64
}

// LinkPair canonicalises an unordered pair of summed-link indices, used as
// the key for the Classification and Rice tables.
type LinkPair struct {
	A, B int
}

// NewLinkPair canonicalises (l1,l2) so NewLinkPair(a,b) == NewLinkPair(b,a).
func NewLinkPair(l1, l2 int) LinkPair {
	if l1 <= l2 {
		return LinkPair{A: l1, B: l2}
	}
	return LinkPair{A: l2, B: l1}
}

// RiceSample is one precomputed (srcPos, dstPos, K) observation for a link
// pair, loaded from the optional Rice-factor file (spec.md §6, input 6).
type RiceSample struct {
	SrcPos geomkit.Vector2D
	DstPos geomkit.Vector2D
	K      float64 // may be +Inf, meaning pure LOS / no diffuse power
}

// StaticWorld owns every piece of immutable geometry and the derived spatial
// indices. Build with Load, then it is safe to share across goroutines.
type StaticWorld struct {
	Params config.Params

	Nodes       []Node
	Links       []Link
	SummedLinks []SummedLink

	nodePairIndex    map[[2]int]int // unordered node pair -> SummedLinks index
	classifications  map[LinkPair]Classification
	linkNameIndex    map[string]int

	Buildings []Building

	riceTable map[LinkPair][]RiceSample

	MapRect        geomkit.Rect
	buildingGrid   *BuildingBuckets
	linkGrid       *LinkGrid

	ready bool // set once Load has finished computeSummedLinks/computeSpatialIndices
}

// Ready reports whether w has finished Load's full construction sequence
// (summed links and spatial indices built). Components that query a
// StaticWorld before it is ready are committing the "query before load"
// UsageError spec.md §7 describes.
func (w *StaticWorld) Ready() bool { return w.ready }
