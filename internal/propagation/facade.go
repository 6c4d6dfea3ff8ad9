// Package propagation implements the stateless PropagationFacade (spec.md
// §4.6): the single entry point an external mobility/channel host calls per
// (transmitter, receiver) query. It ties together StaticWorld's static
// lookups, the Classifier's on-demand classification, and a cached Raytracer
// for the K-factor when no precomputed Rice sample covers the query.
package propagation

import (
	"github.com/banshee-data/radiosim/internal/classify"
	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
)

// Result is the outcome of one query (spec.md §4.6).
type Result struct {
	Class    world.ClassTag
	K        float64
	Pathloss float64
}

// Facade ties together a StaticWorld, a Classifier bound to it, and a
// Raytracer cache, presenting the single query operation the external host
// needs. A Facade holds no per-query state of its own beyond the cache, so
// concurrent callers only contend on the cache's mutex (spec.md §5).
type Facade struct {
	World      *world.StaticWorld
	Classifier *classify.Classifier
	Params     config.Params

	cache *tracerCache
}

// NewFacade builds a Facade bound to w, using w's own parameters. seed owns
// the Raytracer cache's angular-offset RNG stream; no process-global RNG is
// used anywhere in the core (spec.md §9).
func NewFacade(w *world.StaticWorld, seed int64) *Facade {
	return &Facade{
		World:      w,
		Classifier: classify.New(w),
		Params:     w.Params,
		cache:      newTracerCache(w.Params.RaytraceReuseDistance, seed),
	}
}

// Query answers one (txPos, rxPos, txRoadId, rxRoadId) request (spec.md
// §4.6). Road ids are link names from the link-name-mapping file (§6, input
// 5); an empty name never resolves, so callers without road ids can pass "".
func (f *Facade) Query(txPos, rxPos geomkit.Vector2D, txRoadName, rxRoadName string) Result {
	class, srcLink, dstLink := f.classify(txPos, rxPos, txRoadName, rxRoadName)

	k := f.kFactor(class, srcLink, dstLink, txPos, rxPos)
	pl := f.Classifier.Pathloss(txPos, rxPos, class) / f.Params.SystemLoss

	return Result{Class: class.Tag, K: k, Pathloss: pl}
}

// classify resolves road ids via the static link-name map when both are
// known; otherwise it falls back to coordinate-based classification.
func (f *Facade) classify(txPos, rxPos geomkit.Vector2D, txRoadName, rxRoadName string) (world.Classification, int, int) {
	txIdx, txOK := f.World.LinkHasMapping(txRoadName)
	rxIdx, rxOK := f.World.LinkHasMapping(rxRoadName)
	if txOK && rxOK {
		return f.World.Classification(txIdx, rxIdx), txIdx, rxIdx
	}

	result := f.Classifier.Classify(txPos, rxPos)
	return result.Class, result.SourceLink, result.DestLink
}

// kFactor prefers a precomputed Rice sample; absent one, it falls back to
// the cached Raytracer's estimate (spec.md §4.2, §4.5 reuse policy).
func (f *Facade) kFactor(class world.Classification, srcLink, dstLink int, txPos, rxPos geomkit.Vector2D) float64 {
	if srcLink < 0 || dstLink < 0 {
		return 0
	}
	pair := world.NewLinkPair(srcLink, dstLink)
	if f.World.HasRiceEntry(pair) {
		return f.World.KFactor(pair, txPos, rxPos)
	}
	if class.Tag == world.OutOfRange {
		return 0
	}

	tr := f.cache.get(f.World, f.Params, txPos)
	return tr.ComputeK(rxPos, f.Params.AntennaGain)
}
