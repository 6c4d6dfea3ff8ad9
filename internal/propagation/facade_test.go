package propagation

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/fading"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
	"github.com/stretchr/testify/require"
)

// straightStreetWorld mirrors spec.md §8 scenario 1: two collinear streets
// sharing node 1, classified LOS against each other, no buildings.
func straightStreetWorld(t *testing.T) *world.StaticWorld {
	t.Helper()
	dir := t.TempDir()

	nodes := "3\n0 0 0\n1 100 0\n2 200 0\n"
	links := "2\n0 0 1 1 0 10 20\n1 1 2 1 0 10 20\n"
	names := "2\nmain 0\ncross 1\n"
	classification := "1\n0 1 0 0\n"

	nodesPath := filepath.Join(dir, "nodes.txt")
	linksPath := filepath.Join(dir, "links.txt")
	namesPath := filepath.Join(dir, "names.txt")
	classPath := filepath.Join(dir, "classification.txt")
	require.NoError(t, os.WriteFile(nodesPath, []byte(nodes), 0o644))
	require.NoError(t, os.WriteFile(linksPath, []byte(links), 0o644))
	require.NoError(t, os.WriteFile(namesPath, []byte(names), 0o644))
	require.NoError(t, os.WriteFile(classPath, []byte(classification), 0o644))

	w, err := world.Load(world.LoadPaths{
		Nodes:          nodesPath,
		Links:          linksPath,
		LinkNames:      namesPath,
		Classification: classPath,
	}, config.DefaultParams())
	require.NoError(t, err)
	return w
}

func TestFacadeQueryLOSByRoadName(t *testing.T) {
	w := straightStreetWorld(t)
	f := NewFacade(w, 1)

	res := f.Query(geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 100, Y: 0}, "main", "cross")

	require.Equal(t, world.LOS, res.Class)
	want := w.Params.Lambda2Over4PiSquared() / (100 * 100)
	require.InDelta(t, want, res.Pathloss, 1e-15)
}

func TestFacadeQueryOutOfRangeWithNoCandidates(t *testing.T) {
	w := straightStreetWorld(t)
	f := NewFacade(w, 1)

	res := f.Query(geomkit.Vector2D{X: 1e6, Y: 1e6}, geomkit.Vector2D{X: 1e6 + 1, Y: 1e6}, "", "")

	require.Equal(t, world.OutOfRange, res.Class)
	require.Equal(t, 0.0, res.Pathloss)
	require.Equal(t, 0.0, res.K)
}

func TestWorldKFactorUsesRiceTableWhenPresent(t *testing.T) {
	dir := t.TempDir()
	nodes := "6\n0 0 0\n1 100 0\n2 100 100\n3 0 100\n4 200 0\n5 200 100\n"
	links := "5\n0 0 1 1 0 10 20\n1 1 2 1 0 10 20\n2 2 3 1 0 10 20\n3 1 4 1 0 10 20\n4 4 5 1 0 10 20\n"
	rice := "1\n0 5 1\n9 0 0 1 3.0\n"

	nodesPath := filepath.Join(dir, "nodes.txt")
	linksPath := filepath.Join(dir, "links.txt")
	ricePath := filepath.Join(dir, "rice.txt")
	require.NoError(t, os.WriteFile(nodesPath, []byte(nodes), 0o644))
	require.NoError(t, os.WriteFile(linksPath, []byte(links), 0o644))
	require.NoError(t, os.WriteFile(ricePath, []byte(rice), 0o644))

	w, err := world.Load(world.LoadPaths{Nodes: nodesPath, Links: linksPath, RiceTable: ricePath}, config.DefaultParams())
	require.NoError(t, err)

	pair := world.NewLinkPair(0, 5)
	require.True(t, w.HasRiceEntry(pair))
	k := w.KFactor(pair, geomkit.Vector2D{X: 9, Y: 0}, geomkit.Vector2D{X: 0, Y: 1})
	require.Equal(t, 3.0, k)
}

func TestFacadeAdapterFilterSignalScalesByPathloss(t *testing.T) {
	w := straightStreetWorld(t)
	f := NewFacade(w, 1)
	tx, rx := geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 100, Y: 0}

	// Prime the facade's raytracer cache from tx so the adapter's own Query
	// below reuses it rather than consuming further randomness, keeping the
	// class/K pair identical to the one used to build the expected series.
	res := f.Query(tx, rx, "main", "cross")
	refFading := fading.New(7)
	want := make([]float64, 5)
	for i := range want {
		want[i] = res.Pathloss * refFading.Sample(res.Class, res.K)
	}

	a := NewFacadeAdapter(f, "main", "cross", 7)
	out := a.FilterSignal(Frame{Start: 0, Step: 1, SampleCount: 5}, tx, rx)

	require.Equal(t, want, out)
}

func TestFacadeQueryMonotoneDecreasingWithDistance(t *testing.T) {
	w := straightStreetWorld(t)
	f := NewFacade(w, 1)

	near := f.Query(geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 10, Y: 0}, "main", "cross")
	far := f.Query(geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 90, Y: 0}, "main", "cross")

	require.True(t, near.Pathloss > far.Pathloss, "pathloss must strictly decrease with distance")
	require.False(t, math.IsNaN(near.Pathloss))
}
