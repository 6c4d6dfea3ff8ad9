package propagation

import (
	"math/rand"
	"sync"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/raytrace"
	"github.com/banshee-data/radiosim/internal/world"
)

// tracerCache keeps the most recently traced transmitter position and reuses
// it while the query's tx has moved less than reuseDistance; otherwise the
// stale trace is discarded and a fresh one is run (spec.md §4.5 reuse
// policy, §9 shared read-only geometry).
type tracerCache struct {
	mu            sync.Mutex
	reuseDistance float64
	rnd           *rand.Rand

	tx     geomkit.Vector2D
	tracer *raytrace.Tracer
}

func newTracerCache(reuseDistance float64, seed int64) *tracerCache {
	return &tracerCache{
		reuseDistance: reuseDistance,
		rnd:           rand.New(rand.NewSource(seed)),
	}
}

// get returns a Tracer executed from tx, reusing the cached one when within
// reuseDistance of the last transmitter position.
func (c *tracerCache) get(w *world.StaticWorld, params config.Params, tx geomkit.Vector2D) *raytrace.Tracer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracer != nil && geomkit.Distance(c.tx, tx) < c.reuseDistance {
		return c.tracer
	}

	seed := c.rnd.Int63()
	tr := raytrace.New(w, params, tx, params.RayCount, params.WorkerCount, seed)
	tr.Execute() // a fresh Tracer over a World built by Load never errors: Execute fails only on a not-ready World or a second call

	c.tx = tx
	c.tracer = tr
	return tr
}
