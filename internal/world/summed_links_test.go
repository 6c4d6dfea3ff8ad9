package world

import (
	"testing"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/stretchr/testify/require"
)

func TestComputeSummedLinksSumsLanes(t *testing.T) {
	dir := t.TempDir()
	nodes := "2\n0 0 0\n1 100 0\n"
	// Two parallel physical links between the same node pair.
	links := "2\n0 0 1 2 0 100 13.4\n1 0 1 3 0 100 13.4\n"
	paths := LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	require.Len(t, w.SummedLinks, 1)
	require.Equal(t, 5, w.SummedLinks[0].NumLanes)
	require.Equal(t, []int{0}, w.Nodes[0].ConnectedLinks)
	require.Equal(t, []int{0}, w.Nodes[1].ConnectedLinks)
}

func TestComputeSummedLinksIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	nodes := "3\n0 0 0\n1 100 0\n2 100 100\n"
	links := "2\n0 0 1 2 0 100 13.4\n1 1 2 3 0 100 13.4\n"
	paths := LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	first := append([]SummedLink(nil), w.SummedLinks...)
	w.computeSummedLinks()
	require.Equal(t, first, w.SummedLinks)
}

func TestComputeSummedLinksOrderOfFirstAppearance(t *testing.T) {
	dir := t.TempDir()
	nodes := "3\n0 0 0\n1 100 0\n2 200 0\n"
	links := "3\n0 1 2 2 0 100 13.4\n1 0 1 2 0 100 13.4\n2 1 2 1 0 100 13.4\n"
	paths := LoadPaths{
		Nodes: writeTemp(t, dir, "nodes.txt", nodes),
		Links: writeTemp(t, dir, "links.txt", links),
	}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	require.Len(t, w.SummedLinks, 2)
	require.Equal(t, [2]int{1, 2}, [2]int{w.SummedLinks[0].NodeA, w.SummedLinks[0].NodeB})
	require.Equal(t, 3, w.SummedLinks[0].NumLanes) // links 0 and 2 share the (1,2) pair: 2+1
	require.Equal(t, [2]int{0, 1}, [2]int{w.SummedLinks[1].NodeA, w.SummedLinks[1].NodeB})
	require.Equal(t, 2, w.SummedLinks[1].NumLanes)
}
