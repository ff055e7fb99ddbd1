package scratch_test

import (
	"testing"

	"github.com/hubastard/canopy/engine/scratch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quad struct {
	id   int
	name string
}

func TestArenaGrowsAcrossChunks(t *testing.T) {
	a := scratch.NewArena[quad](32)

	ptrs := make([]*quad, 70)
	for i := range ptrs {
		p := a.Alloc()
		require.Equal(t, quad{}, *p, "alloc %d", i)
		p.id = i
		ptrs[i] = p
	}
	require.Equal(t, 70, a.Len())

	for i, p := range ptrs {
		assert.Equal(t, i, p.id, "pointer %d moved while the arena grew", i)
	}

	var seen []int
	a.Each(func(q *quad) { seen = append(seen, q.id) })
	require.Len(t, seen, 70)
	for i, id := range seen {
		assert.Equal(t, i, id)
	}
}

func TestArenaResetZeroesValues(t *testing.T) {
	a := scratch.NewArena[quad](32)
	for i := 0; i < 70; i++ {
		p := a.Alloc()
		p.id = i + 1
		p.name = "sprite"
	}

	a.Reset()
	assert.Equal(t, 0, a.Len())
	calls := 0
	a.Each(func(*quad) { calls++ })
	assert.Zero(t, calls)

	for i := 0; i < 70; i++ {
		assert.Equal(t, quad{}, *a.Alloc(), "reused slot %d", i)
	}
	assert.Equal(t, 70, a.Len())
}

func TestArenaZeroChunkSize(t *testing.T) {
	a := scratch.NewArena[int](0)
	for i := 0; i < 100; i++ {
		*a.Alloc() = i
	}
	assert.Equal(t, 100, a.Len())

	var zero scratch.Arena[int]
	*zero.Alloc() = 7
	assert.Equal(t, 1, zero.Len())
}
