package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logreen/gridsum/internal/dataset"
	"github.com/logreen/gridsum/internal/pairsum"
)

func TestParseSizes(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		sizes, err := parseSizes("10, 50,100")
		require.NoError(t, err)
		assert.Equal(t, []int{10, 50, 100}, sizes)
	})

	t.Run("non-numeric", func(t *testing.T) {
		_, err := parseSizes("10,huge")
		assert.Error(t, err)
	})

	t.Run("non-positive", func(t *testing.T) {
		_, err := parseSizes("10,0")
		assert.Error(t, err)
	})
}

func TestWriteDataset_LoadableAndSolvable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data_list_100.csv")
	rng := rand.New(rand.NewSource(1))

	require.NoError(t, writeDataset(path, 100, 5000, 0, rng))

	values, err := dataset.CSVLoader{}.Load(path)
	require.NoError(t, err)
	require.Len(t, values, 100)

	// The planted pair must be findable by both strategies.
	_, foundScan := pairsum.ExhaustiveScan{}.Find(values, 5000)
	_, foundLookup := pairsum.SinglePassLookup{}.Find(values, 5000)
	assert.True(t, foundScan)
	assert.True(t, foundLookup)
}

func TestWriteDataset_Deterministic(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.csv")
	p2 := filepath.Join(dir, "b.csv")

	require.NoError(t, writeDataset(p1, 50, 0, 0, rand.New(rand.NewSource(7))))
	require.NoError(t, writeDataset(p2, 50, 0, 0, rand.New(rand.NewSource(7))))

	v1, err := dataset.CSVLoader{}.Load(p1)
	require.NoError(t, err)
	v2, err := dataset.CSVLoader{}.Load(p2)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestWriteDataset_Discoverable(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{10, 50} {
		path := filepath.Join(dir, fmt.Sprintf("data_list_%d.csv", size))
		require.NoError(t, writeDataset(path, size, 0, 0, rng))
	}

	sources, err := dataset.Discover(dir)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, 10, sources[0].Size)
	assert.Equal(t, 50, sources[1].Size)
}
