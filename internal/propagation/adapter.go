package propagation

import (
	"github.com/banshee-data/radiosim/internal/fading"
	"github.com/banshee-data/radiosim/internal/geomkit"
)

// Frame describes one sampling request from the external mobility/channel
// host: the attenuation must be sampled once per Step over SampleCount
// instants starting at Start (spec.md §6).
type Frame struct {
	Start       float64
	Step        float64
	SampleCount int
}

// AnalogueModel is the narrow capability the external host expects of every
// propagation component, reformulated from the source's global accessor
// pattern into an explicit adapter interface (spec.md §9). Internal
// components (Facade, Classifier, Raytracer) stay concrete; only this
// boundary is polymorphic.
type AnalogueModel interface {
	FilterSignal(frame Frame, senderPos, receiverPos geomkit.Vector2D) []float64
}

// FacadeAdapter implements AnalogueModel over a Facade and an owned
// FadingModel stream, for one (txRoad, rxRoad) pair of the external host's
// choosing. Not safe for concurrent use by multiple goroutines sampling the
// same stream (spec.md §9: FadingModel's RNG is per-stream, not shared).
type FacadeAdapter struct {
	Facade     *Facade
	Fading     *fading.Model
	TxRoadName string
	RxRoadName string
}

// NewFacadeAdapter builds an adapter for one road pair, owning its own
// fading stream seeded independently of the facade's raytracer cache.
func NewFacadeAdapter(f *Facade, txRoadName, rxRoadName string, fadingSeed int64) *FacadeAdapter {
	return &FacadeAdapter{
		Facade:     f,
		Fading:     fading.New(fadingSeed),
		TxRoadName: txRoadName,
		RxRoadName: rxRoadName,
	}
}

// FilterSignal answers one frame: query the channel once for (senderPos,
// receiverPos), then draw SampleCount independent fading samples and scale
// each by the query's pathloss (spec.md §6 output interface).
func (a *FacadeAdapter) FilterSignal(frame Frame, senderPos, receiverPos geomkit.Vector2D) []float64 {
	res := a.Facade.Query(senderPos, receiverPos, a.TxRoadName, a.RxRoadName)
	samples := a.Fading.SampleSeries(res.Class, res.K, frame.SampleCount)
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = res.Pathloss * s
	}
	return out
}
