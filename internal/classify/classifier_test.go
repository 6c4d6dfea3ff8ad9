package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/world"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClassifyStraightStreetIsLOS(t *testing.T) {
	dir := t.TempDir()
	nodes := "2\n0 0 0\n1 100 0\n"
	links := "1\n0 0 1 2 0 100 13.4\n"
	classification := "1\n0 0 0 0\n"

	paths := world.LoadPaths{
		Nodes:          writeTemp(t, dir, "nodes.txt", nodes),
		Links:          writeTemp(t, dir, "links.txt", links),
		Classification: writeTemp(t, dir, "class.txt", classification),
	}
	w, err := world.Load(paths, config.DefaultParams())
	require.NoError(t, err)

	c := New(w)
	res := c.Classify(geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 100, Y: 0})
	require.Equal(t, world.LOS, res.Class.Tag)
	require.Greater(t, res.Pathloss, 0.0)
}

func TestClassifyOutOfRangeWhenNoCandidates(t *testing.T) {
	dir := t.TempDir()
	nodes := "2\n0 0 0\n1 100 0\n"
	links := "1\n0 0 1 2 0 100 13.4\n"
	paths := world.LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	w, err := world.Load(paths, config.DefaultParams())
	require.NoError(t, err)

	c := New(w)
	// Far from any corridor: nearest link and nearest node both fail their
	// thresholds.
	res := c.Classify(geomkit.Vector2D{X: 0, Y: 5000}, geomkit.Vector2D{X: 100, Y: 5000})
	require.Equal(t, world.OutOfRange, res.Class.Tag)
	require.Equal(t, 0.0, res.Pathloss)
}

func TestClassifySymmetric(t *testing.T) {
	dir := t.TempDir()
	nodes := "3\n0 0 0\n1 50 0\n2 50 50\n"
	links := "2\n0 0 1 2 0 100 13.4\n1 1 2 2 0 100 13.4\n"
	classification := "1\n0 1 1 1 3.5 3.5 1\n"
	paths := world.LoadPaths{
		Nodes:          writeTemp(t, dir, "nodes.txt", nodes),
		Links:          writeTemp(t, dir, "links.txt", links),
		Classification: writeTemp(t, dir, "class.txt", classification),
	}
	w, err := world.Load(paths, config.DefaultParams())
	require.NoError(t, err)

	c := New(w)
	a := c.Classify(geomkit.Vector2D{X: 0, Y: 0}, geomkit.Vector2D{X: 50, Y: 50})
	b := c.Classify(geomkit.Vector2D{X: 50, Y: 50}, geomkit.Vector2D{X: 0, Y: 0})
	require.Equal(t, a.Class.Tag, b.Class.Tag)
}
