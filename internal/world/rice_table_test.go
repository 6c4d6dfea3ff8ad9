package world

import (
	"math"
	"testing"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/stretchr/testify/require"
)

func TestKFactorNearestSample(t *testing.T) {
	dir := t.TempDir()
	rice := "1\n2 7 2\n0 0 0 0 1.5\n100 100 100 100 9.0\n"
	paths := LoadPaths{RiceTable: writeTemp(t, dir, "rice.txt", rice)}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	pair := NewLinkPair(2, 7)
	require.Equal(t, 1.5, w.KFactor(pair, geomkit.Vector2D{X: 1, Y: 1}, geomkit.Vector2D{X: 1, Y: 1}))
	require.Equal(t, 9.0, w.KFactor(pair, geomkit.Vector2D{X: 99, Y: 99}, geomkit.Vector2D{X: 99, Y: 99}))
}

func TestKFactorMissingEntryIsZero(t *testing.T) {
	w, err := Load(LoadPaths{}, config.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 0.0, w.KFactor(NewLinkPair(0, 1), geomkit.Vector2D{}, geomkit.Vector2D{}))
}

func TestKFactorCanBeInfinite(t *testing.T) {
	dir := t.TempDir()
	rice := "1\n0 1 1\n0 0 0 0 inf\n"
	paths := LoadPaths{RiceTable: writeTemp(t, dir, "rice.txt", rice)}
	w, err := Load(paths, config.DefaultParams())
	require.NoError(t, err)

	k := w.KFactor(NewLinkPair(0, 1), geomkit.Vector2D{}, geomkit.Vector2D{})
	require.True(t, math.IsInf(k, 1))
}
