package randutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestDeriveSeparatesStreams(t *testing.T) {
	seen := make(map[int64]bool)
	for stream := range uint64(16) {
		s := Derive(7, stream)
		assert.False(t, seen[s], "stream %d repeats a seed", stream)
		seen[s] = true
		assert.NotEqual(t, int64(7), s)
	}
	assert.Equal(t, Derive(7, 3), Derive(7, 3))
}

func TestShuffleIsPermutation(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	shuffled := slices.Clone(items)
	Shuffle(New(3), shuffled)

	assert.NotEqual(t, items, shuffled)
	slices.Sort(shuffled)
	assert.Equal(t, items, shuffled)
}
