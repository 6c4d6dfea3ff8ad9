package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// straightStreetWorld builds the "straight street, no buildings" scenario
// from spec.md §8 scenario 1: two nodes 100m apart, one link, one summed link.
func straightStreetWorld(t *testing.T) *StaticWorld {
	t.Helper()
	dir := t.TempDir()

	nodes := "2\n0 0 0\n1 100 0\n"
	links := "1\n0 0 1 2 0 100 13.4\n"

	paths := LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)
	return w
}

func TestLoadStraightStreet(t *testing.T) {
	w := straightStreetWorld(t)
	require.Len(t, w.Nodes, 2)
	require.Len(t, w.Links, 1)
	require.Len(t, w.SummedLinks, 1)
	require.Equal(t, 2, w.SummedLinks[0].NumLanes)
}

func TestLoadMissingFileIsLoadError(t *testing.T) {
	_, err := Load(LoadPaths{Nodes: "/nonexistent/nodes.txt"}, config.DefaultParams())
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, FileMissing, le.Kind)
}

func TestLoadMalformedLinkSelfLoop(t *testing.T) {
	dir := t.TempDir()
	nodes := "1\n0 0 0\n"
	links := "1\n0 0 0 2 0 100 13.4\n"
	paths := LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	_, err := Load(paths, config.DefaultParams())
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, Malformed, le.Kind)
}

func TestLoadEmptyPathsLeavesDefaults(t *testing.T) {
	w, err := Load(LoadPaths{}, config.DefaultParams())
	require.NoError(t, err)
	require.Empty(t, w.Nodes)
	require.Empty(t, w.Links)
	require.Empty(t, w.Buildings)
	require.Equal(t, outOfRangeClassification(), w.Classification(0, 1))
	require.Equal(t, 0.0, w.KFactor(NewLinkPair(0, 1), w.MapRect.Location, w.MapRect.Location))
}

func TestLoadLinkNamesAndClassification(t *testing.T) {
	dir := t.TempDir()
	nodes := "3\n0 0 0\n1 50 0\n2 50 50\n"
	links := "2\n0 0 1 2 0 100 13.4\n1 1 2 2 0 100 13.4\n"
	classification := "1\n0 1 1 1 3.5 3.5 1\n"
	names := "2\nmainst 0\nsidest 1\n"

	paths := LoadPaths{
		Nodes:          writeTemp(t, dir, "nodes.txt", nodes),
		Links:          writeTemp(t, dir, "links.txt", links),
		Classification: writeTemp(t, dir, "class.txt", classification),
		LinkNames:      writeTemp(t, dir, "names.txt", names),
	}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	cl := w.Classification(0, 1)
	require.Equal(t, NLOS1, cl.Tag)
	require.Equal(t, []int{1}, cl.NodeSet)
	require.Equal(t, 3.5, cl.MainLanes)

	clByName, ok := w.ClassificationByName("mainst", "sidest")
	require.True(t, ok)
	require.Equal(t, cl, clByName)

	idx, ok := w.LinkHasMapping("mainst")
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestLoadRiceTable(t *testing.T) {
	dir := t.TempDir()
	rice := "1\n0 5 1\n10 0 0 0 3.0\n"
	paths := LoadPaths{RiceTable: writeTemp(t, dir, "rice.txt", rice)}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	k := w.KFactor(NewLinkPair(0, 5), geomkit.Vector2D{X: 9, Y: 0}, geomkit.Vector2D{X: 0, Y: 1})
	require.Equal(t, 3.0, k)
}
