// Package raytrace implements the multithreaded 2D ray tracer (spec.md
// §4.5): a worker pool of goroutines consumes rays from a shared queue,
// reflects them off building edges until a power budget is exhausted, and
// estimates a receiver's K-factor from the intercepted ray set.
package raytrace

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
)

// ErrDoubleExecute is returned when Execute is called a second time on the
// same Tracer (spec.md §7, UsageError).
var ErrDoubleExecute = errors.New("raytrace: Execute called twice on the same Tracer")

// minReflectionDistanceFactor avoids near-wall self-intersections immediately
// after a reflection (spec.md §4.5).
const minReflectionDistanceFactor = 0.5 // * Params.LaneWidth

// Tracer spawns rayCount rays from a transmitter position and traces them
// against a snapshot of nearby buildings using workerCount goroutines.
// Construct with New, call Execute once, then query results via ComputeK or
// Results.
type Tracer struct {
	World  *world.StaticWorld
	Params config.Params

	TxPos   geomkit.Vector2D
	TraceID uuid.UUID

	workerCount    int
	freeSpaceRange float64
	bucketSnapshot []int // building ids within freeSpaceRange of TxPos

	queue    *rayQueue
	results  *resultSet
	inFlight int64

	executed atomic.Bool
}

// New builds a Tracer for tx: it enqueues rayCount rays uniformly spread
// over [0,2pi) with a random angular offset drawn from seed, and snapshots
// the building buckets within free-space range of tx (spec.md §4.5 step 1-2).
func New(w *world.StaticWorld, params config.Params, tx geomkit.Vector2D, rayCount, workerCount int, seed int64) *Tracer {
	rnd := rand.New(rand.NewSource(seed))
	alpha0 := rnd.Float64() * (math.Pi / 2)
	return newWithStartAngle(w, params, tx, rayCount, workerCount, alpha0)
}

// NewAt builds a Tracer with an explicit start angle instead of a random
// one, for deterministic tests of the ray fan geometry (spec.md §8 boundary
// scenario: rays grazing an edge at known angles).
func NewAt(w *world.StaticWorld, params config.Params, tx geomkit.Vector2D, rayCount, workerCount int, startAngle float64) *Tracer {
	return newWithStartAngle(w, params, tx, rayCount, workerCount, startAngle)
}

func newWithStartAngle(w *world.StaticWorld, params config.Params, tx geomkit.Vector2D, rayCount, workerCount int, alpha0 float64) *Tracer {
	freeSpaceRange := params.FreeSpaceRange()

	q := newRayQueue(rayCount)
	for r := 0; r < rayCount; r++ {
		theta := alpha0 + 2*math.Pi*float64(r)/float64(rayCount)
		dir := geomkit.FromAngle(theta)
		end := geomkit.Add(tx, geomkit.Scale(freeSpaceRange, dir))
		q.push(RayPathComponent{
			Segment:               geomkit.NewLineSegment(tx, end),
			ReflectionCount:       0,
			DistanceSum:           0,
			ReflectionCoefficient: 1,
			LastReflectorIndex:    -1,
		})
	}

	return &Tracer{
		World:          w,
		Params:         params,
		TxPos:          tx,
		TraceID:        uuid.New(),
		workerCount:    workerCount,
		freeSpaceRange: freeSpaceRange,
		bucketSnapshot: w.CollectBuildingsInRange(tx, freeSpaceRange),
		queue:          q,
		results:        &resultSet{},
		inFlight:       int64(rayCount),
	}
}

// Execute spawns the worker pool, blocks until every ray (and every
// reflection it produces) has been processed, and returns. Calling it twice
// on the same Tracer, or tracing against a World that has not finished
// Load, are both usage errors.
func (t *Tracer) Execute() error {
	if !t.World.Ready() {
		return &world.UsageError{Op: "raytrace.Execute", Why: "World queried before Load finished building its spatial indices"}
	}
	if !t.executed.CompareAndSwap(false, true) {
		return ErrDoubleExecute
	}

	var wg sync.WaitGroup
	wg.Add(t.workerCount)
	for i := 0; i < t.workerCount; i++ {
		go func() {
			defer wg.Done()
			t.runWorker()
		}()
	}
	wg.Wait()
	return nil
}

// runWorker repeatedly pops a ray, traces it, and republishes either a
// result or a reflected ray, until the queue is empty and no ray is still
// being processed anywhere (spec.md §5, §9 in-flight counter design).
func (t *Tracer) runWorker() {
	for {
		ray, ok := t.queue.tryPop()
		if !ok {
			if atomic.LoadInt64(&t.inFlight) == 0 {
				return
			}
			runtime.Gosched()
			continue
		}
		t.trace(ray)
		atomic.AddInt64(&t.inFlight, -1)
	}
}

// Results returns a snapshot of the completed ray segments. Safe to call
// after Execute returns; results accumulate regardless of worker count or
// pop order (spec.md §8, invariance property).
func (t *Tracer) Results() []RayPathComponent {
	return t.results.snapshot()
}
